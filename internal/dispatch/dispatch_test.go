package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-confcore/internal/config"
	"go-confcore/internal/session"
)

func newTestDispatcher(out *bytes.Buffer) *Dispatcher {
	sess := session.New(config.Config{}, zerolog.Nop())
	return New(sess, out, zerolog.Nop())
}

func TestRun_OneLineInOneLineOut(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader(`{"attendance":{"login":"a","password":"b","talk":"t"}}` + "\n" +
		`{"proposal":{"login":"a","password":"b","talk":"t2","title":"T","start_timestamp":"2024-01-01"}}` + "\n")

	require.NoError(t, d.Run(context.Background(), in))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.JSONEq(t, `{"status":"ERROR"}`, line)
	}
}

func TestRun_NonOpenBeforeOpenIsError(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader(`{"user":{"login":"a","password":"b","newlogin":"c","newpassword":"d"}}` + "\n")
	require.NoError(t, d.Run(context.Background(), in))

	assert.JSONEq(t, `{"status":"ERROR"}`, strings.TrimSpace(out.String()))
}

func TestRun_DecodeErrorYieldsError(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader("not json\n")
	require.NoError(t, d.Run(context.Background(), in))

	assert.JSONEq(t, `{"status":"ERROR"}`, strings.TrimSpace(out.String()))
}

func TestRun_InvalidOrganizerSecretYieldsErrorAndNoCrash(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader(`{"organizer":{"secret":"nope","newlogin":"org","newpassword":"pw"}}` + "\n")
	require.NoError(t, d.Run(context.Background(), in))

	assert.JSONEq(t, `{"status":"ERROR"}`, strings.TrimSpace(out.String()))
}

func TestRun_BlankLinesAreSkippedNotCounted(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader("\n\n" + `{"reject":{"login":"a","password":"b","talk":"t"}}` + "\n\n")
	require.NoError(t, d.Run(context.Background(), in))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1)
}

func TestRun_EachResponseIsValidJSONWithStatus(t *testing.T) {
	var out bytes.Buffer
	d := newTestDispatcher(&out)

	in := strings.NewReader(`{"day_plan":{"timestamp":"2024-01-01"}}` + "\n")
	require.NoError(t, d.Run(context.Background(), in))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Contains(t, resp, "status")
}
