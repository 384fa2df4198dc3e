package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/constants"
	"github.com/oshokin/d3s/internal/threeds"
)

// ErrEmptyResult indicates that there is no authorization result to write.
var ErrEmptyResult = errors.New("authorization result is empty")

// ResultDocument is the authorization result as written to the output.
type ResultDocument struct {
	SessionID          string    `json:"session_id"                      yaml:"session_id"`
	Version            string    `json:"version"                         yaml:"version"`
	MD                 string    `json:"md,omitempty"                    yaml:"md,omitempty"`
	PaRes              string    `json:"pa_res,omitempty"                yaml:"pa_res,omitempty"`
	CRes               string    `json:"c_res,omitempty"                 yaml:"c_res,omitempty"`
	ThreeDSSessionData string    `json:"three_ds_session_data,omitempty" yaml:"three_ds_session_data,omitempty"`
	Placeholder        bool      `json:"placeholder,omitempty"           yaml:"placeholder,omitempty"`
	CompletedAt        time.Time `json:"completed_at"                    yaml:"completed_at"`
}

// NewResultDocument converts an authorization result into its output form.
func NewResultDocument(result *threeds.Result, completedAt time.Time) (*ResultDocument, error) {
	if result == nil {
		return nil, ErrEmptyResult
	}

	return &ResultDocument{
		SessionID:          result.SessionID,
		Version:            result.Mode.String(),
		MD:                 result.MD,
		PaRes:              result.PaRes,
		CRes:               result.CRes,
		ThreeDSSessionData: result.ThreeDSSessionData,
		Placeholder:        result.Placeholder,
		CompletedAt:        completedAt.UTC(),
	}, nil
}

// EncodeResult renders the document in the given output format.
func EncodeResult(w io.Writer, doc *ResultDocument, format string) error {
	switch format {
	case config.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode result as JSON: %w", err)
		}
	case config.OutputFormatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2) //nolint:mnd // Two spaces match the configuration file style.

		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode result as YAML: %w", err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML encoder: %w", err)
		}
	default:
		return fmt.Errorf("%w: '%s'", config.ErrUnknownOutputFormat, format)
	}

	return nil
}

// WriteResult writes the document to the configured output path.
// An empty path writes to stdout.
func WriteResult(cfg *config.Config, doc *ResultDocument, stdout io.Writer) error {
	if cfg.OutputPath == "" {
		return EncodeResult(stdout, doc, cfg.OutputFormat)
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create output folder: %w", err)
		}
	}

	file, err := os.OpenFile(
		cfg.OutputPath,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	if err = EncodeResult(file, doc, cfg.OutputFormat); err != nil {
		_ = file.Close()

		return err
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
