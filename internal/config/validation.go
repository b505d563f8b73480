package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Model validation
	if c.Model.Name == "" {
		errs = append(errs, "model.name must not be empty")
	}
	if c.Model.MaxOutputTokens < 1 {
		errs = append(errs, "model.max_output_tokens must be >= 1")
	}

	// Selection validation
	if c.Selection.MaxFiles < 1 {
		errs = append(errs, "selection.max_files must be >= 1")
	}
	if c.Selection.MaxListingEntries < 1 {
		errs = append(errs, "selection.max_listing_entries must be >= 1")
	}
	if c.Selection.MaxListingChars < 1 {
		errs = append(errs, "selection.max_listing_chars must be >= 1")
	}
	if c.Selection.SnippetBudgetChars < 1 {
		errs = append(errs, "selection.snippet_budget_chars must be >= 1")
	}
	if c.Selection.SnippetPerFileChars < 1 {
		errs = append(errs, "selection.snippet_per_file_chars must be >= 1")
	}

	// Semantic validation: per-file cap cannot exceed the total budget
	if c.Selection.SnippetPerFileChars > c.Selection.SnippetBudgetChars {
		errs = append(errs, "selection.snippet_per_file_chars must be <= selection.snippet_budget_chars")
	}

	// UI validation
	if c.UI.ColorPrimary == "" {
		errs = append(errs, "ui.color_primary must not be empty")
	}
	if c.UI.ColorAdded == "" {
		errs = append(errs, "ui.color_added must not be empty")
	}
	if c.UI.ColorRemoved == "" {
		errs = append(errs, "ui.color_removed must not be empty")
	}
	if c.UI.ColorContext == "" {
		errs = append(errs, "ui.color_context must not be empty")
	}
	if c.UI.ColorError == "" {
		errs = append(errs, "ui.color_error must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
