package jsonshape_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
	"github.com/reoring/jsonshape/i18n"
)

func TestIssues_Error(t *testing.T) {
	iss := jsonshape.Issues{
		{Path: "/a", Code: jsonshape.CodeMissingMember},
		{Path: "/b", Code: jsonshape.CodeMemberMismatch},
		{Path: "/c", Code: jsonshape.CodeMismatchedTypeID},
		{Path: "/d", Code: jsonshape.CodeMismatchedUnions},
	}
	got := iss.Error()
	if !strings.HasPrefix(got, "missing_member at /a; member_mismatch at /b") || !strings.HasSuffix(got, "(total 4)") {
		t.Fatalf("got %q", got)
	}
	if (jsonshape.Issues{}).Error() != "" {
		t.Fatalf("empty issues should render empty")
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	u := jsonshape.New()
	r := u.Check(jsonshape.TypeInt, jsonshape.TypeBool)
	err := fmt.Errorf("validate: %w", r.Err())
	iss, ok := jsonshape.AsIssues(err)
	if !ok || iss[0].Code != jsonshape.CodeMismatchedTypeID {
		t.Fatalf("got (%v, %v)", iss, ok)
	}
	if _, ok := jsonshape.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors carry no issues")
	}
}

func TestIssueMessagesFollowLanguage(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	u := jsonshape.New()
	r := u.Check(jsonshape.TypeInt, jsonshape.TypeBool)
	en, _ := jsonshape.AsIssues(r.Err())
	i18n.SetLanguage("ja")
	ja, _ := jsonshape.AsIssues(r.Err())
	if en[0].Message == ja[0].Message || ja[0].Message == "" {
		t.Fatalf("messages should be localised: %q vs %q", en[0].Message, ja[0].Message)
	}
}
