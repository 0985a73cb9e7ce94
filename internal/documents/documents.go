// Package documents turns uploaded files into the study and résumé context
// blobs that ground interview questions.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ErrNoText is returned for a file whose extracted text is too short to be
// useful, typically a scanned image saved as PDF.
var ErrNoText = errors.New("no extractable text")

// Bucket names which context a file contributes to.
type Bucket string

const (
	BucketStudy  Bucket = "Study"
	BucketResume Bucket = "Resume"
)

// File is one uploaded document.
type File struct {
	Name string
	Data []byte
}

// Diagnostic reports a file that was skipped.
type Diagnostic struct {
	File string
	Err  error
}

// Message is the user-facing explanation for the skipped file.
func (d Diagnostic) Message() string {
	if errors.Is(d.Err, ErrNoText) {
		return fmt.Sprintf("%s looks like a scan or image. Upload a digital PDF with selectable text.", d.File)
	}
	return fmt.Sprintf("Error reading %s: %v", d.File, d.Err)
}

// Result is the outcome of classifying a batch of files.
type Result struct {
	Study       string
	Resume      string
	Diagnostics []Diagnostic

	minUsable int
}

// Usable reports whether either bucket carries enough text to ground a
// session.
func (r Result) Usable() bool {
	return utf8.RuneCountInString(r.Study) > r.minUsable || utf8.RuneCountInString(r.Resume) > r.minUsable
}

// Classifier routes files into buckets by filename and truncates each
// bucket to its budget. One failing file never aborts the batch.
type Classifier struct {
	reader Reader
	cfg    Config
	logger *zap.Logger
}

// NewClassifier creates a Classifier. A nil logger is replaced by a no-op.
func NewClassifier(reader Reader, cfg Config, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{reader: reader, cfg: cfg.withDefaults(), logger: logger}
}

// BucketFor returns the bucket a filename routes to.
func (c *Classifier) BucketFor(name string) Bucket {
	lower := strings.ToLower(name)
	for _, tok := range c.cfg.ResumeTokens {
		if strings.Contains(lower, tok) {
			return BucketResume
		}
	}
	return BucketStudy
}

// Classify extracts every file in order and concatenates the text into the
// study and résumé buckets, each prefixed per file with a source label.
func (c *Classifier) Classify(ctx context.Context, files []File) Result {
	var study, resume strings.Builder
	res := Result{minUsable: c.cfg.MinUsableChars}

	for _, f := range files {
		if ctx.Err() != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{File: f.Name, Err: ctx.Err()})
			continue
		}

		text, err := c.extract(f)
		if err != nil {
			c.logger.Warn("skipping document", zap.String("file", f.Name), zap.Error(err))
			res.Diagnostics = append(res.Diagnostics, Diagnostic{File: f.Name, Err: err})
			continue
		}

		bucket := c.BucketFor(f.Name)
		dst := &study
		if bucket == BucketResume {
			dst = &resume
		}
		fmt.Fprintf(dst, "\n--- %s Source: %s ---\n", bucket, f.Name)
		dst.WriteString(text)

		c.logger.Debug("document classified",
			zap.String("file", f.Name),
			zap.String("bucket", string(bucket)),
			zap.Int("chars", utf8.RuneCountInString(text)))
	}

	res.Study = Truncate(study.String(), c.cfg.StudyBudget)
	res.Resume = Truncate(resume.String(), c.cfg.ResumeBudget)
	return res
}

func (c *Classifier) extract(f File) (string, error) {
	text, err := c.reader.Extract(f.Name, f.Data)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < c.cfg.MinTextChars {
		return "", ErrNoText
	}
	return text, nil
}

// Truncate cuts s to at most limit runes. limit <= 0 means no limit.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	i := 0
	for pos := range s {
		if i == limit {
			return s[:pos]
		}
		i++
	}
	return s
}
