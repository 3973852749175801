package nairaland

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	table := []struct {
		op       Operation
		params   Params
		expected map[string]string
	}{
		{
			op:     OpCreateTopic,
			params: Params{ParamTitle: "Hello", ParamBody: "World", ParamBoardId: "8"},
			expected: map[string]string{
				"title":   "Hello",
				"body":    "World",
				"board":   "8",
				"session": "tok",
			},
		},
		{
			op:     OpChangePassword,
			params: Params{ParamOldSecret: "old", ParamNewSecret: "new"},
			expected: map[string]string{
				"oldpassword": "old",
				"password":    "new",
				"password2":   "new",
				"session":     "tok",
			},
		},
		{
			op:       OpFollowMember,
			params:   Params{ParamMemberId: "seun"},
			expected: map[string]string{"member": "seun", "session": "tok"},
		},
		{
			op:       OpRequestDeactivation,
			params:   nil,
			expected: map[string]string{"session": "tok"},
		},
	}

	for _, row := range table {
		form, err := operations[row.op].payload(row.params, "tok")
		require.NoError(t, err, row.op)
		require.Equal(t, row.expected, form, row.op)
	}
}

func TestPayloadIsFreshPerCall(t *testing.T) {
	def := operations[OpCreateTopic]
	params := Params{ParamTitle: "first", ParamBody: "body", ParamBoardId: "34"}

	first, err := def.payload(params, "tok")
	require.NoError(t, err)
	first["title"] = "tampered"

	second, err := def.payload(Params{ParamTitle: "second", ParamBody: "body", ParamBoardId: "34"}, "tok")
	require.NoError(t, err)
	require.Equal(t, "second", second["title"])

	require.Equal(t, Params{ParamTitle: "first", ParamBody: "body", ParamBoardId: "34"}, params)
}

func TestPayloadErrors(t *testing.T) {
	def := operations[OpFollowMember]

	_, err := def.payload(Params{}, "tok")
	require.ErrorIs(t, err, ErrMissingParameter)
	require.ErrorContains(t, err, ParamMemberId)

	_, err = def.payload(Params{ParamMemberId: "seun", "zeta": "1", "alpha": "2"}, "tok")
	require.ErrorIs(t, err, ErrUnknownParameter)
	require.ErrorContains(t, err, "alpha, zeta")

	_, err = operations[OpCreateTopic].payload(Params{ParamTitle: "t", ParamBody: "b", ParamBoardId: "0"}, "tok")
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestOperationsListing(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 4)
	require.Equal(t, []string{ParamTitle, ParamBody, ParamBoardId}, ops[OpCreateTopic])
	require.Empty(t, ops[OpRequestDeactivation])
}

func TestConfirmationPayload(t *testing.T) {
	page := []byte(`<html><body>
<form action="/search"><input type="hidden" name="q" value="nope"></form>
<form action="https://forum.test/do_confirm" method="post">
	<input type="hidden" name="confirm" value="abc">
	<input type="hidden" name="session" value="forged">
	<input type="text" name="visible" value="ignored">
</form>
</body></html>`)

	form := confirmationPayload(page, "/do_confirm", "tok")
	require.Equal(t, map[string]string{
		"confirm": "abc",
		"session": "tok",
	}, form)

	form = confirmationPayload([]byte("not html at all"), "/do_confirm", "tok")
	require.Equal(t, map[string]string{"session": "tok"}, form)
}
