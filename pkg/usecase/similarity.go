package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/opsintake/incident-wizard/pkg/domain/types"
)

//go:embed prompt/similarity_score.md
var similarityPromptTmpl string

var similarityPrompt = template.Must(template.New("similarity_score").Parse(similarityPromptTmpl))

// scorePattern matches the first number in [0,1] syntax within a reply.
// Used as a fallback when the reply is not a bare number.
var scorePattern = regexp.MustCompile(`\b(?:0(?:\.\d+)?|1(?:\.0+)?)\b`)

// SimilarityUseCase judges how close two free-text descriptions are in
// meaning. The judgment itself is delegated to the language model; this
// use case owns prompt construction, parsing, clamping and fallback.
type SimilarityUseCase struct {
	llmClient gollem.LLMClient
}

// NewSimilarityUseCase creates a new SimilarityUseCase
func NewSimilarityUseCase(llmClient gollem.LLMClient) *SimilarityUseCase {
	return &SimilarityUseCase{
		llmClient: llmClient,
	}
}

// similarityPromptData holds data for the similarity prompt template
type similarityPromptData struct {
	TextA string
	TextB string
}

// Score compares two texts and returns a similarity confidence in
// [0,1]. Each call is a single independent model request pinned to
// temperature 0 so repeated comparisons of the same pair agree.
func (uc *SimilarityUseCase) Score(ctx context.Context, textA, textB string) (types.SimilarityScore, error) {
	a := strings.TrimSpace(textA)
	b := strings.TrimSpace(textB)
	if a == "" || b == "" {
		return 0, goerr.Wrap(ErrEmptyInput, "both texts are required for similarity scoring")
	}

	var buf bytes.Buffer
	if err := similarityPrompt.Execute(&buf, similarityPromptData{TextA: a, TextB: b}); err != nil {
		return 0, goerr.Wrap(err, "failed to build similarity prompt")
	}

	session, err := uc.llmClient.NewSession(ctx)
	if err != nil {
		return 0, goerr.Wrap(ErrUpstreamModel, "failed to create scoring session",
			goerr.V("cause", err.Error()),
		)
	}

	resp, err := session.Generate(ctx,
		[]gollem.Input{gollem.Text(buf.String())},
		gollem.WithTemperature(0),
	)
	if err != nil {
		return 0, goerr.Wrap(ErrUpstreamModel, "failed to generate similarity score",
			goerr.V("cause", err.Error()),
		)
	}
	if resp == nil || len(resp.Texts) == 0 {
		return 0, goerr.Wrap(ErrUpstreamModel, "scoring returned an empty response")
	}

	raw := strings.TrimSpace(strings.Join(resp.Texts, "\n"))

	score, err := parseScoreReply(raw)
	if err != nil {
		return 0, err
	}

	return score.Clamp(), nil
}

// parseScoreReply extracts a similarity score from a model reply in two
// stages: a direct numeric parse, then a search for the first number in
// [0,1] syntax anywhere in the text.
func parseScoreReply(raw string) (types.SimilarityScore, error) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return types.SimilarityScore(v), nil
	}

	if m := scorePattern.FindString(raw); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return types.SimilarityScore(v), nil
		}
	}

	return 0, goerr.Wrap(ErrUnparsableScore, "no similarity score found in reply",
		goerr.V(RawReplyKey, raw),
	)
}
