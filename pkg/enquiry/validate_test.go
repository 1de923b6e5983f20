package enquiry_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/enquiry"
	"github.com/infinityconsultancy/enquiry/pkg/validator"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	anyPolicy := enquiry.Policy{Email: enquiry.EmailPolicyAny}
	gmailPolicy := enquiry.Policy{Email: enquiry.EmailPolicyGmail}

	tests := []struct {
		name    string
		mutate  func(r *enquiry.Request)
		policy  enquiry.Policy
		wantMsg string
	}{
		{name: "valid", mutate: func(*enquiry.Request) {}, policy: anyPolicy},
		{name: "names with spaces", mutate: func(r *enquiry.Request) { r.FirstName = "Mary Ann" }, policy: anyPolicy},
		{name: "missing first name", mutate: func(r *enquiry.Request) { r.FirstName = " " }, policy: anyPolicy, wantMsg: enquiry.MsgMissingFields},
		{name: "digit in first name", mutate: func(r *enquiry.Request) { r.FirstName = "Jane2" }, policy: anyPolicy, wantMsg: enquiry.MsgFirstName},
		{name: "symbol in last name", mutate: func(r *enquiry.Request) { r.LastName = "Doe!" }, policy: anyPolicy, wantMsg: enquiry.MsgLastName},
		{name: "not an email", mutate: func(r *enquiry.Request) { r.Email = "not-an-email" }, policy: anyPolicy, wantMsg: enquiry.MsgEmail},
		{name: "short domain accepted", mutate: func(r *enquiry.Request) { r.Email = "a@b.co" }, policy: anyPolicy},
		{name: "gmail policy rejects other domains", mutate: func(r *enquiry.Request) { r.Email = "a@b.co" }, policy: gmailPolicy, wantMsg: enquiry.MsgGmail},
		{name: "gmail policy accepts gmail", mutate: func(r *enquiry.Request) { r.Email = "Jane.Doe@Gmail.com" }, policy: gmailPolicy},
		{name: "five digit phone", mutate: func(r *enquiry.Request) { r.Phone = "12345" }, policy: anyPolicy, wantMsg: enquiry.MsgPhone},
		{name: "eleven digit phone", mutate: func(r *enquiry.Request) { r.Phone = "12345678901" }, policy: anyPolicy, wantMsg: enquiry.MsgPhone},
		{name: "phone with dashes", mutate: func(r *enquiry.Request) { r.Phone = "987-654-3210" }, policy: anyPolicy, wantMsg: enquiry.MsgPhone},
		{name: "empty message", mutate: func(r *enquiry.Request) { r.UserMessage = "  " }, policy: anyPolicy, wantMsg: enquiry.MsgMessageEmpty},
		{
			name:    "message below minimum",
			mutate:  func(r *enquiry.Request) { r.UserMessage = "hi" },
			policy:  enquiry.Policy{Email: enquiry.EmailPolicyAny, MessageMinLen: 10},
			wantMsg: "Message must be at least 10 characters long.",
		},
		{
			name:    "message above maximum",
			mutate:  func(r *enquiry.Request) { r.UserMessage = strings.Repeat("é", 21) },
			policy:  enquiry.Policy{Email: enquiry.EmailPolicyAny, MessageMaxLen: 20},
			wantMsg: "Message must be at most 20 characters long.",
		},
		{
			name:   "message at maximum counts runes",
			mutate: func(r *enquiry.Request) { r.UserMessage = strings.Repeat("é", 20) },
			policy: enquiry.Policy{Email: enquiry.EmailPolicyAny, MessageMaxLen: 20},
		},
		{
			name: "first failure wins",
			mutate: func(r *enquiry.Request) {
				r.FirstName = "J4ne"
				r.Phone = "1"
			},
			policy:  anyPolicy,
			wantMsg: enquiry.MsgFirstName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validRequest()
			tt.mutate(&r)
			err := enquiry.Validate(r, tt.policy)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs := validator.ExtractValidationErrors(err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantMsg, verrs[0].Message)
		})
	}
}

func TestCheckRequired(t *testing.T) {
	t.Parallel()

	require.NoError(t, enquiry.CheckRequired(validRequest()))

	err := enquiry.CheckRequired(enquiry.Request{FirstName: "Jane", Phone: "\t"})
	assert.ErrorIs(t, err, enquiry.ErrMissingFields)
	assert.Contains(t, err.Error(), "lastName, email, phone, userMessage")
}

func TestParseEmailPolicy(t *testing.T) {
	t.Parallel()

	p, err := enquiry.ParseEmailPolicy("")
	require.NoError(t, err)
	assert.Equal(t, enquiry.EmailPolicyAny, p)

	p, err = enquiry.ParseEmailPolicy(" GMAIL ")
	require.NoError(t, err)
	assert.Equal(t, enquiry.EmailPolicyGmail, p)

	_, err = enquiry.ParseEmailPolicy("corporate")
	assert.ErrorIs(t, err, enquiry.ErrInvalidConfig)
}
