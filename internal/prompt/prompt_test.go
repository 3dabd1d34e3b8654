package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
		asked   int
	}{
		{name: "yes", input: "y\n", want: true, asked: 1},
		{name: "upper no", input: "N\n", want: false, asked: 1},
		{name: "padded", input: "  Y  \n", want: true, asked: 1},
		{name: "retries until valid", input: "maybe\n\nyes\nn\n", want: false, asked: 4},
		{name: "eof", input: "what\n", wantErr: ErrNoAnswer, asked: 2},
		{name: "empty", input: "", wantErr: ErrNoAnswer, asked: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(strings.NewReader(tc.input), &out, "Continue anyway?")
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
			assert.Equal(t, tc.asked, strings.Count(out.String(), "Continue anyway? [Y/n] "))
		})
	}
}
