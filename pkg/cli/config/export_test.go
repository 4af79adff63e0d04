package config

// NewIntakeForTest creates an Intake config for testing purposes
func NewIntakeForTest(configPath, variant string, threshold float64, limit int) *Intake {
	return &Intake{
		configPath: configPath,
		variant:    variant,
		threshold:  threshold,
		limit:      limit,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewServiceNowForTest creates a ServiceNow config for testing purposes
func NewServiceNowForTest(instanceURL, username, password string) *ServiceNow {
	return &ServiceNow{
		instanceURL: instanceURL,
		username:    username,
		password:    password,
	}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}
