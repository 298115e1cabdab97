package output

// Reporter renders progress of the verification commands for a human.
type Reporter interface {
	Header(title string)
	Section(title string)
	Check(name string, ok bool, details string)
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Fail(format string, args ...any)
	Print(text string)
}
