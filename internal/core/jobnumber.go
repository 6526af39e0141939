package core

import (
	"github.com/laporte-eng/jobnav/pkg/models"
)

// ExtractJobNumber returns the first run of six ASCII digits in text,
// trying every starting offset from left to right. A longer digit run
// yields its first six digits.
func ExtractJobNumber(text string) (models.JobNumber, error) {
	for i := 0; i+models.JobNumberLength <= len(text); i++ {
		window := text[i : i+models.JobNumberLength]
		if models.IsJobNumber(window) {
			return models.JobNumber(window), nil
		}
	}
	return "", &models.PathError{Kind: models.KindJobNumberNotFound, Input: text}
}

// JobNumberFromArg accepts either a bare job number or any text containing
// one, such as a print filename.
func JobNumberFromArg(arg string) (models.JobNumber, error) {
	if models.IsJobNumber(arg) {
		return models.JobNumber(arg), nil
	}
	return ExtractJobNumber(arg)
}
