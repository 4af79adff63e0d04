package usecase

// ParseScoreReply is exported for testing
var ParseScoreReply = parseScoreReply

// ContainsTrigger is exported for testing
var ContainsTrigger = containsTrigger

// BuildSystemDirective is exported for testing
var BuildSystemDirective = (*IntakeUseCase).buildSystemDirective
