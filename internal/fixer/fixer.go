// Package fixer reconciles a live environment file with its example: it
// loads both, merges them, re-validates, repairs what it can and writes the
// result back in the example's layout.
package fixer

import (
	"context"
	"fmt"
	"strings"

	"envcheck/internal/envfile"
	"envcheck/internal/logger"
	"envcheck/internal/prompt"
	"envcheck/internal/store"
	"envcheck/internal/validate"
)

// BackupSuffix is appended to the live path when a backup is requested.
const BackupSuffix = ".bak"

// Options selects the files and the repair mode for one run.
type Options struct {
	EnvPath     string
	ExamplePath string
	// Interactive asks the Prompter for every missing or mistyped value.
	Interactive bool
	// DryRun computes the new content without writing it.
	DryRun bool
	// Backup copies the current live file to EnvPath+BackupSuffix before writing.
	Backup bool
}

// Outcome describes what a run found and did.
type Outcome struct {
	// Result is the validation of the merged records, before repair.
	Result   validate.Result
	Repaired []string
	Skipped  []string
	// Before is the live file as read; After is the content that was (or,
	// on a dry run, would have been) written.
	Before     string
	After      string
	Written    bool
	BackupPath string
}

// Changed reports whether the run produces different file content.
func (o *Outcome) Changed() bool {
	return o.Before != o.After
}

// Fixer runs the load, merge, validate, repair and persist sequence.
type Fixer struct {
	Store    store.Store
	Prompter prompt.Prompter
	Schema   envfile.SchemaOptions
}

// New returns a Fixer. p may be nil when only non-interactive runs are made.
func New(s store.Store, p prompt.Prompter, schema envfile.SchemaOptions) *Fixer {
	return &Fixer{Store: s, Prompter: p, Schema: schema}
}

// Run performs one fix. Load and persist failures abort the run and are
// returned unchanged. A prompt failure aborts before anything is written.
func (f *Fixer) Run(ctx context.Context, opts Options) (*Outcome, error) {
	logger.Info(ctx, "Fixing '{{_File_}}%s{{|-|}}' against '{{_File_}}%s{{|-|}}'.", opts.EnvPath, opts.ExamplePath)

	// Load
	liveText, err := f.Store.Read(opts.EnvPath)
	if err != nil {
		return nil, err
	}
	exampleText, err := f.Store.Read(opts.ExamplePath)
	if err != nil {
		return nil, err
	}
	live := envfile.Parse(opts.EnvPath, liveText)
	example, err := envfile.ParseExample(opts.ExamplePath, exampleText, f.Schema)
	if err != nil {
		return nil, err
	}

	// Merge
	merged := envfile.Merge(live, example)

	// Re-validate
	out := &Outcome{Before: liveText}
	out.Result = validate.Compare(merged.Records, example.Records)
	for _, w := range out.Result.Warnings {
		logger.Warn(ctx, w.Message)
	}

	// Repair
	if !out.Result.IsValid() {
		if opts.Interactive && f.Prompter == nil {
			return nil, fmt.Errorf("interactive repair requested without a prompter")
		}
		if err := f.repair(ctx, merged, out, opts.Interactive); err != nil {
			return nil, err
		}
	}

	// Persist
	out.After = envfile.Format(merged.Records, example.Lines)
	if opts.DryRun {
		logger.Info(ctx, "Dry run, '{{_File_}}%s{{|-|}}' was not written.", opts.EnvPath)
		return out, nil
	}
	if opts.Backup {
		bak := opts.EnvPath + BackupSuffix
		if err := f.Store.Write(bak, liveText); err != nil {
			return nil, err
		}
		out.BackupPath = bak
		logger.Info(ctx, "Backed up '{{_File_}}%s{{|-|}}' to '{{_File_}}%s{{|-|}}'.", opts.EnvPath, bak)
	}
	if err := f.Store.Write(opts.EnvPath, out.After); err != nil {
		return nil, err
	}
	out.Written = true
	return out, nil
}

func (f *Fixer) repair(ctx context.Context, merged *envfile.File, out *Outcome, interactive bool) error {
	for _, finding := range out.Result.Errors {
		if finding.Kind != validate.KindMissing && finding.Kind != validate.KindTypeMismatch {
			continue
		}
		rec, ok := merged.Lookup(finding.Key)
		if !ok {
			continue
		}
		logger.Trace(ctx, "Repairing {{_Var_}}%s{{|-|}} (%s).", finding.Key, finding.Kind)
		if !interactive {
			logger.Warn(ctx, "Skipping {{_Var_}}%s{{|-|}} (interactive mode disabled)", finding.Key)
			out.Skipped = append(out.Skipped, finding.Key)
			continue
		}
		value, err := f.solicit(ctx, rec)
		if err != nil {
			return err
		}
		merged.SetValue(rec.Key, value)
		logger.Trace(ctx, "Set {{_Var_}}%s{{|-|}}.", rec.Key)
		out.Repaired = append(out.Repaired, rec.Key)
	}
	return nil
}

// solicit asks until the answer is non-empty and satisfies the record's type.
func (f *Fixer) solicit(ctx context.Context, rec envfile.Record) (string, error) {
	for {
		answer, err := f.Prompter.Prompt(ctx, rec.Key, rec.Description)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			logger.Warn(ctx, "Value is required")
			continue
		}
		if !validate.Conforms(rec.Type, answer) {
			logger.Warn(ctx, "Environment variable {{_Var_}}%s{{|-|}} must be of type %s", rec.Key, rec.Type)
			continue
		}
		return answer, nil
	}
}
