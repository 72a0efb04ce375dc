package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	warningStyle   lipgloss.Style
	dimStyle       lipgloss.Style
	labelStyle     lipgloss.Style
	generatedStyle lipgloss.Style
	fallbackStyle  lipgloss.Style
	headerStyle    lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		warningStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		labelStyle = lipgloss.NewStyle()
		generatedStyle = lipgloss.NewStyle()
		fallbackStyle = lipgloss.NewStyle()
		headerStyle = lipgloss.NewStyle()
		return
	}

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	generatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
}

// Success renders success text
func Success(text string) string {
	return successStyle.Render(text)
}

// Error renders error text
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning renders warning text
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Dim renders dim text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Label renders a configured bucket label.
func Label(text string) string {
	return labelStyle.Render(text)
}

// Generated renders an extrapolated bucket label.
func Generated(text string) string {
	return generatedStyle.Render(text)
}

// Fallback renders a label that is just the query value.
func Fallback(text string) string {
	return fallbackStyle.Render(text)
}

// SuccessMsg prints a success message
func SuccessMsg(format string, args ...interface{}) {
	fmt.Println(Success("✓") + " " + fmt.Sprintf(format, args...))
}

// ErrorMsg prints an error message to stderr
func ErrorMsg(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, Error("✗")+" "+fmt.Sprintf(format, args...))
}

// WarningMsg prints a warning message
func WarningMsg(format string, args ...interface{}) {
	fmt.Println(Warning("⚠") + " " + fmt.Sprintf(format, args...))
}
