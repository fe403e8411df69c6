package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/arthur-debert/slinky/pkg/errors"
)

// EnvPassphrase supplies the vault passphrase non-interactively
const EnvPassphrase = "SLINKY_PASSPHRASE"

// passphraseReader obtains passphrases; swapped in tests
type passphraseReader struct {
	lookupEnv func(string) (string, bool)
	stdin     *os.File
	prompt    io.Writer
}

func defaultPassphraseReader() *passphraseReader {
	return &passphraseReader{lookupEnv: os.LookupEnv, stdin: os.Stdin, prompt: os.Stderr}
}

// read returns the passphrase from the environment or a no-echo prompt.
// With confirm the prompt asks twice. Callers zero the result after use.
func (p *passphraseReader) read(confirm bool) ([]byte, error) {
	if v, ok := p.lookupEnv(EnvPassphrase); ok {
		if v == "" {
			return nil, errors.New(errors.ErrInvalidInput, MsgErrEmptyPass)
		}
		return []byte(v), nil
	}

	fd := int(p.stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoPassphrase)
	}

	pass, err := p.prompted(fd, MsgPassphrasePrompt)
	if err != nil {
		return nil, err
	}
	if len(pass) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrEmptyPass)
	}
	if !confirm {
		return pass, nil
	}

	again, err := p.prompted(fd, MsgConfirmPrompt)
	if err != nil {
		wipe(pass)
		return nil, err
	}
	defer wipe(again)
	if !bytes.Equal(pass, again) {
		wipe(pass)
		return nil, errors.New(errors.ErrInvalidInput, MsgErrPassMismatch)
	}
	return pass, nil
}

func (p *passphraseReader) prompted(fd int, prompt string) ([]byte, error) {
	_, _ = fmt.Fprint(p.prompt, prompt)
	pass, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(p.prompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to read passphrase")
	}
	return pass, nil
}

// wipe zeroes b
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
