package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
)

// ExtractFields implements llm.FieldExtractor over text-only chat/completions.
// Every failure wraps common.ErrUnavailable: to the pipeline the model path
// is simply absent, and the heuristic extractor takes over.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (entity.ResumeFields, []byte, error) {
	if c.cfg.APIKey == "" {
		return entity.ResumeFields{}, nil, common.ErrUnavailable
	}

	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"filename", req.Filename,
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req.Text, req.Filename)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Warn("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ResumeFields{}, nil, unavailable(err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Warn("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ResumeFields{}, raw, unavailable(err)
	}
	if len(cc.Choices) == 0 {
		c.log.Warn("llm.extract.no_choices", "req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds())
		return entity.ResumeFields{}, raw, unavailable(fmt.Errorf("no choices in response"))
	}

	rawContent := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))

	// Validate strictly first; fall back to a lenient pass that strips
	// fences and drops offending values.
	if err := llm.ValidateResponse(rawContent); err != nil {
		cleaned, dropped, sErr := llm.SanitizeFields(llm.ExtractJSONBlock(string(rawContent)))
		if sErr != nil {
			c.log.Warn("llm.extract.sanitize_failed",
				"req_id", rid, "error", sErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return entity.ResumeFields{}, rawContent, unavailable(sErr)
		}
		if vErr := llm.ValidateResponse(cleaned); vErr != nil {
			c.log.Warn("llm.extract.schema_validation_failed",
				"req_id", rid, "error", vErr,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return entity.ResumeFields{}, rawContent, unavailable(vErr)
		}
		c.log.Warn("llm.extract.lenient_applied", "req_id", rid, "dropped", dropped)
		rawContent = cleaned
	}

	out, err := llm.ParseFields(rawContent)
	if err != nil {
		c.log.Warn("llm.extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.ResumeFields{}, rawContent, unavailable(err)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"has_name", out.Name != nil,
		"has_email", out.Email != nil,
		"has_contact", out.ContactNumber != nil,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, rawContent, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("openai response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}
