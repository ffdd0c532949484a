// Package quizerr carries errors between tea models as messages.
package quizerr

type (
	ErrMsg struct {
		Err error
	}
)

func (m ErrMsg) Error() string {
	return m.Err.Error()
}
