package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/archive"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
	"github.com/joseph-ayodele/resume-analyzer/internal/entity"
	"github.com/joseph-ayodele/resume-analyzer/internal/fields"
	"github.com/joseph-ayodele/resume-analyzer/internal/llm"
	"github.com/joseph-ayodele/resume-analyzer/internal/ner"
)

type stubRecognizer struct{}

func (stubRecognizer) Recognize(string) ([]ner.Entity, error) { return nil, nil }

type stubModel struct {
	fields entity.ResumeFields
	err    error
	calls  int
}

func (s *stubModel) ExtractFields(_ context.Context, _ llm.ExtractRequest) (entity.ResumeFields, []byte, error) {
	s.calls++
	if s.err != nil {
		return entity.ResumeFields{}, nil, s.err
	}
	return s.fields, []byte(`{}`), nil
}

// createTestDOCX builds a minimal DOCX whose body has one paragraph per line.
func createTestDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	for _, line := range lines {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>\n", line)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	fmt.Fprintf(doc, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
%s</w:body>
</w:document>`, body.String())
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func resumeDOCX(t *testing.T) []byte {
	return createTestDOCX(t,
		"Jane Doe",
		"jane.doe@example.com",
		"+1 555 123 4567",
		"BSc Computer Science, Springfield University",
	)
}

func newRules() *fields.Extractor {
	return fields.NewExtractor(stubRecognizer{}, nil)
}

func TestParseResumeHeuristics(t *testing.T) {
	p := NewParser(nil, newRules(), nil)

	flds, kind, err := p.ParseResume(context.Background(), "jane.docx", resumeDOCX(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ExtractorHeuristic, kind)

	require.NotNil(t, flds.Name)
	assert.Equal(t, "Jane Doe", *flds.Name)
	require.NotNil(t, flds.Email)
	assert.Equal(t, "jane.doe@example.com", *flds.Email)
	require.NotNil(t, flds.ContactNumber)
	assert.Equal(t, "+1 555 123 4567", *flds.ContactNumber)
	require.NotNil(t, flds.LastQualification)
	assert.Equal(t, "BSc Computer Science, Springfield University", *flds.LastQualification)
	require.NotNil(t, flds.LastInstitution)
	assert.Equal(t, "BSc Computer Science, Springfield University", *flds.LastInstitution)
	assert.Nil(t, flds.Address)
}

func TestParseResumeModelFirst(t *testing.T) {
	model := &stubModel{fields: entity.ResumeFields{
		Name:  entity.StrPtr("Model Jane"),
		Email: entity.StrPtr("model@example.com"),
	}}
	p := NewParser(nil, newRules(), model)

	flds, kind, err := p.ParseResume(context.Background(), "jane.docx", resumeDOCX(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ExtractorLLM, kind)
	assert.Equal(t, 1, model.calls)

	require.NotNil(t, flds.Name)
	assert.Equal(t, "Model Jane", *flds.Name)
}

func TestParseResumeModelFallback(t *testing.T) {
	model := &stubModel{err: common.ErrUnavailable}
	p := NewParser(nil, newRules(), model)

	flds, kind, err := p.ParseResume(context.Background(), "jane.docx", resumeDOCX(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ExtractorHeuristic, kind)
	assert.Equal(t, 1, model.calls)

	require.NotNil(t, flds.Email)
	assert.Equal(t, "jane.doe@example.com", *flds.Email)
}

func TestParseResumeDecodeError(t *testing.T) {
	p := NewParser(nil, newRules(), nil)

	_, kind, err := p.ParseResume(context.Background(), "broken.pdf", []byte("junk"))
	assert.Error(t, err)
	assert.Equal(t, constants.ExtractorNone, kind)
}

func TestParseResumeEmptyDocument(t *testing.T) {
	p := NewParser(nil, newRules(), nil)

	flds, kind, err := p.ParseResume(context.Background(), "empty.docx", createTestDOCX(t))
	require.NoError(t, err)
	assert.Equal(t, constants.ExtractorNone, kind)
	assert.True(t, flds.IsEmpty())
}

func TestBatchRunKeepsOrderAndDegrades(t *testing.T) {
	runner := NewBatchRunner(nil, NewParser(nil, newRules(), nil))

	files := []archive.File{
		{Name: "jane.docx", Data: resumeDOCX(t)},
		{Name: "broken.pdf", Data: []byte("junk")},
		{Name: "empty.docx", Data: createTestDOCX(t)},
	}

	res := runner.Run(context.Background(), files)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, constants.BatchStatusPartial, res.Status())

	assert.Equal(t, 1, res.Records[0].SNo)
	assert.Equal(t, "jane.docx", res.Records[0].Filename)
	assert.Equal(t, constants.ExtractorHeuristic, res.Records[0].Extractor)
	require.NotNil(t, res.Records[0].Email)

	// The broken document keeps its row and its position.
	assert.Equal(t, 2, res.Records[1].SNo)
	assert.Equal(t, constants.ExtractorNone, res.Records[1].Extractor)
	assert.True(t, res.Records[1].IsEmpty())

	assert.Equal(t, 3, res.Records[2].SNo)
	assert.Equal(t, constants.ExtractorNone, res.Records[2].Extractor)
	assert.True(t, res.Records[2].IsEmpty())
}

type panickingModel struct{}

func (panickingModel) ExtractFields(context.Context, llm.ExtractRequest) (entity.ResumeFields, []byte, error) {
	panic("model blew up")
}

func TestBatchRunIsolatesPanics(t *testing.T) {
	runner := NewBatchRunner(nil, NewParser(nil, newRules(), panickingModel{}))

	files := []archive.File{
		{Name: "jane.docx", Data: resumeDOCX(t)},
		{Name: "carol.docx", Data: resumeDOCX(t)},
	}

	res := runner.Run(context.Background(), files)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, constants.BatchStatusFailed, res.Status())
	for i, rec := range res.Records {
		assert.Equal(t, i+1, rec.SNo)
		assert.Equal(t, constants.ExtractorNone, rec.Extractor)
		assert.True(t, rec.IsEmpty())
	}
}

func TestBatchResultStatus(t *testing.T) {
	tests := []struct {
		name     string
		records  int
		failed   int
		expected constants.BatchStatus
	}{
		{name: "all parsed", records: 3, failed: 0, expected: constants.BatchStatusDone},
		{name: "some failed", records: 3, failed: 1, expected: constants.BatchStatusPartial},
		{name: "all failed", records: 3, failed: 3, expected: constants.BatchStatusFailed},
		{name: "no records", records: 0, failed: 0, expected: constants.BatchStatusFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := BatchResult{
				Records: make([]entity.ResumeRecord, tc.records),
				Failed:  tc.failed,
			}
			assert.Equal(t, tc.expected, res.Status())
		})
	}
}
