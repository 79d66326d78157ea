package tailor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odiseo153/tailorcv/internal/gateway"
	"github.com/odiseo153/tailorcv/internal/ingestion"
	"github.com/odiseo153/tailorcv/internal/registry"
)

// stubGateway replays canned responses and records every request.
type stubGateway struct {
	responses []string
	err       error
	calls     []gateway.Request
}

func (s *stubGateway) Call(_ context.Context, req gateway.Request) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", errors.New("stub exhausted")
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// spyRegistry records lookups.
type spyRegistry struct {
	template registry.Template
	err      error
	gets     []string
}

func (r *spyRegistry) Get(_ context.Context, id string) (registry.Template, error) {
	r.gets = append(r.gets, id)
	if r.err != nil {
		return registry.Template{}, r.err
	}
	return r.template, nil
}

// progressRecorder collects everything the engine reports.
type progressRecorder struct {
	percents          []int
	infoProcessed     int
	templateProcessed int
}

func (r *progressRecorder) observer() *Progress {
	return &Progress{
		OnProgress:          func(p int) { r.percents = append(r.percents, p) },
		OnInfoProcessed:     func() { r.infoProcessed++ },
		OnTemplateProcessed: func() { r.templateProcessed++ },
	}
}

func assertMonotonic(t *testing.T, percents []int) {
	t.Helper()
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1],
			"progress must not decrease: %v", percents)
	}
}

func TestExtractInfo_HappyPath(t *testing.T) {
	gw := &stubGateway{responses: []string{"```json\n{\"summary\": \"engineer\",}\n```"}}
	engine := New(gw)
	rec := &progressRecorder{}

	out, err := engine.ExtractInfo(context.Background(), strings.NewReader("%PDF"), ingestion.KindPDF, rec.observer())

	require.NoError(t, err)
	// Fences stripped and the trailing comma repaired.
	assert.JSONEq(t, `{"summary": "engineer"}`, out)

	assert.Equal(t, []int{10, 25, 50}, rec.percents)
	assert.Equal(t, 1, rec.infoProcessed)

	require.Len(t, gw.calls, 1)
	call := gw.calls[0]
	require.Len(t, call.Messages, 2)
	assert.Equal(t, gateway.RoleSystem, call.Messages[0].Role)
	assert.Equal(t, gateway.RoleUser, call.Messages[1].Role)
	require.NotNil(t, call.Attachment)
	assert.Equal(t, "application/pdf", call.Attachment.MIMEType)
}

func TestExtractInfo_GatewayFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("boom")}
	engine := New(gw)

	_, err := engine.ExtractInfo(context.Background(), strings.NewReader("img"), ingestion.KindImage, nil)

	var extractErr *ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, ingestion.KindImage, extractErr.Kind)
	assert.ErrorContains(t, err, "failed to process image file")
}

func TestExtractTemplate_LowTemperatureAndFenceStrip(t *testing.T) {
	gw := &stubGateway{responses: []string{"```html\n<div class=\"cv\">{{name}}</div>\n```"}}
	engine := New(gw)

	html, err := engine.ExtractTemplate(context.Background(), strings.NewReader("%PDF"))

	require.NoError(t, err)
	assert.Equal(t, `<div class="cv">{{name}}</div>`, html)

	require.Len(t, gw.calls, 1)
	require.NotNil(t, gw.calls[0].Temperature)
	assert.InDelta(t, 0.1, float64(*gw.calls[0].Temperature), 0.0001)
}

func TestExtractTemplate_WrapsFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("model down")}
	engine := New(gw)

	_, err := engine.ExtractTemplate(context.Background(), strings.NewReader("%PDF"))

	var tplErr *TemplateError
	require.ErrorAs(t, err, &tplErr)
	assert.ErrorContains(t, err, "failed to generate template")
}

func TestResolveTemplate_Success(t *testing.T) {
	gw := &stubGateway{responses: []string{"<main>{{name}}</main>"}}
	reg := &spyRegistry{template: registry.Template{ID: "modern-01", PDFURL: "https://cdn/x.pdf"}}
	engine := New(gw,
		WithRegistry(reg),
		WithPDFFetcher(func(_ context.Context, url string) (io.ReadCloser, error) {
			assert.Equal(t, "https://cdn/x.pdf", url)
			return io.NopCloser(strings.NewReader("%PDF")), nil
		}),
	)

	html, err := engine.ResolveTemplate(context.Background(), "modern-01")

	require.NoError(t, err)
	assert.Equal(t, "<main>{{name}}</main>", html)
	assert.Equal(t, []string{"modern-01"}, reg.gets)
}

func TestResolveTemplate_StageErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		reg := &spyRegistry{err: registry.ErrNotFound}
		engine := New(&stubGateway{}, WithRegistry(reg))

		_, err := engine.ResolveTemplate(context.Background(), "nope")

		var resErr *TemplateResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, StageLookup, resErr.Stage)
		assert.True(t, IsTemplateNotFound(err))
	})

	t.Run("binary fetch failed", func(t *testing.T) {
		reg := &spyRegistry{template: registry.Template{ID: "x", PDFURL: "https://cdn/x.pdf"}}
		engine := New(&stubGateway{},
			WithRegistry(reg),
			WithPDFFetcher(func(context.Context, string) (io.ReadCloser, error) {
				return nil, errors.New("cdn down")
			}),
		)

		_, err := engine.ResolveTemplate(context.Background(), "x")

		var resErr *TemplateResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, StageFetch, resErr.Stage)
	})

	t.Run("no registry configured", func(t *testing.T) {
		engine := New(&stubGateway{})

		_, err := engine.ResolveTemplate(context.Background(), "x")

		var resErr *TemplateResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, StageLookup, resErr.Stage)
	})
}

func TestGenerate_ProgressAndFenceStrip(t *testing.T) {
	gw := &stubGateway{responses: []string{"```html\n<html><body>cv</body></html>\n```"}}
	engine := New(gw)
	rec := &progressRecorder{}

	html, err := engine.Generate(context.Background(), GenerateInput{
		JobOffer:      "Backend engineer wanted",
		CandidateInfo: `{"summary": "gopher"}`,
		Language:      "en",
	}, rec.observer())

	require.NoError(t, err)
	assert.Equal(t, "<html><body>cv</body></html>", html)
	assert.Equal(t, []int{85, 95}, rec.percents)
	assertMonotonic(t, rec.percents)
}

func TestGenerate_NoPartialHTMLOnFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("quota")}
	engine := New(gw)

	html, err := engine.Generate(context.Background(), GenerateInput{JobOffer: "x"}, nil)

	var genErr *GenerateError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorContains(t, err, "CV generation failed")
	assert.Empty(t, html)
}

func TestGenerate_ForwardsSelector(t *testing.T) {
	gw := &stubGateway{responses: []string{"<html></html>"}}
	engine := New(gw)

	_, err := engine.Generate(context.Background(), GenerateInput{
		JobOffer: "x",
		Selector: &gateway.ModelSelector{Provider: "gemini", ModelID: "gemini-2.5-pro"},
	}, nil)

	require.NoError(t, err)
	require.NotNil(t, gw.calls[0].Selector)
	assert.Equal(t, "gemini-2.5-pro", gw.calls[0].Selector.ModelID)
}
