// Package report renders probe results as plain text or JSON.
package report
