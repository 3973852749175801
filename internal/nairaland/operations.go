package nairaland

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"nairaland-client/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Operation names an authenticated action the forum supports.
type Operation string

const (
	OpCreateTopic         Operation = "create_topic"
	OpChangePassword      Operation = "change_password"
	OpFollowMember        Operation = "follow_member"
	OpRequestDeactivation Operation = "request_deactivation"
)

// Params are the explicit parameters of one operation call, keyed by the
// parameter names listed in Operations.
type Params map[string]string

const (
	ParamTitle     = "title"
	ParamBody      = "body"
	ParamBoardId   = "board_id"
	ParamOldSecret = "old_secret"
	ParamNewSecret = "new_secret"
	ParamMemberId  = "member_id"
)

const sessionField = "session"

type paramDef struct {
	name string
	// form fields the value is sent as
	fields   []string
	validate func(string) error
}

type operationDef struct {
	endpoint string
	// second endpoint of a two-phase operation, posted after endpoint succeeds
	confirm string
	params  []paramDef
}

func positiveInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%d is not positive", n)
	}
	return nil
}

var operations = map[Operation]operationDef{
	OpCreateTopic: {
		endpoint: "/do_newtopic",
		params: []paramDef{
			{name: ParamTitle, fields: []string{"title"}},
			{name: ParamBody, fields: []string{"body"}},
			{name: ParamBoardId, fields: []string{"board"}, validate: positiveInt},
		},
	},
	OpChangePassword: {
		endpoint: "/do_changepass",
		params: []paramDef{
			{name: ParamOldSecret, fields: []string{"oldpassword"}},
			// the forum wants the new password twice, as if typed into a confirmation box
			{name: ParamNewSecret, fields: []string{"password", "password2"}},
		},
	},
	OpFollowMember: {
		endpoint: "/do_followmember",
		params: []paramDef{
			{name: ParamMemberId, fields: []string{"member"}},
		},
	},
	OpRequestDeactivation: {
		endpoint: "/send_confirmation_email_for_account_deactivation",
		confirm:  "/do_send_confirmation_email_for_account_deactivation",
	},
}

// Operations lists the supported operations with their required parameters.
func Operations() map[Operation][]string {
	out := make(map[Operation][]string, len(operations))
	for op, def := range operations {
		names := make([]string, len(def.params))
		for i, p := range def.params {
			names[i] = p.name
		}
		out[op] = names
	}
	return out
}

// payload builds the form of one call out of params and the session token.
// It returns a new map every time and never modifies params.
func (s operationDef) payload(params Params, token string) (map[string]string, error) {
	form := make(map[string]string, len(s.params)+1)
	known := make(map[string]bool, len(s.params))

	for _, p := range s.params {
		known[p.name] = true

		value, ok := params[p.name]
		if !ok || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingParameter, p.name)
		}
		if p.validate != nil {
			err := p.validate(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %s", ErrInvalidParameter, p.name, err)
			}
		}
		for _, field := range p.fields {
			form[field] = value
		}
	}

	var unknown []string
	for name := range params {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, strings.Join(unknown, ", "))
	}

	form[sessionField] = token
	return form, nil
}

// confirmationPayload builds the form of the second phase of a two-phase
// operation. It carries over the hidden inputs of the form on page that
// posts to action, the session token always comes from the client.
func confirmationPayload(page []byte, action, token string) map[string]string {
	form := map[string]string{}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err == nil {
		selector := fmt.Sprintf("form[action$=%q]", action)
		for name, value := range htmlutil.HiddenInputs(doc.Find(selector)) {
			form[name] = value
		}
	}

	form[sessionField] = token
	return form
}
