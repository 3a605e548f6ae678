package services

import (
	"net/http"
	"testing"

	"github.com/collegeconnect/backend/internal/utils"
)

func TestParseResumeRejectsEmptyFile(t *testing.T) {
	svc := NewResumeService(&fakeProvider{out: "{}"})

	_, err := svc.Parse(testCtx(), nil)
	wantStatus(t, err, http.StatusBadRequest)
}

func TestParseResumeRejectsNonPDF(t *testing.T) {
	svc := NewResumeService(&fakeProvider{out: "{}"})

	_, err := svc.Parse(testCtx(), []byte("this is not a pdf"))
	wantStatus(t, err, http.StatusBadRequest)
	if got := utils.Message(err, ""); got != "could not read the PDF" {
		t.Fatalf("message = %q", got)
	}
}

func TestParseResumeWithoutProvider(t *testing.T) {
	svc := NewResumeService(nil)

	// a broken file fails before the provider check
	_, err := svc.Parse(testCtx(), []byte{0x00, 0x01})
	wantStatus(t, err, http.StatusBadRequest)
}

func TestDecodeResumeResponseLiftsEmbeddedJSON(t *testing.T) {
	raw := "Here is the extracted data:\n```json\n" +
		`{"fullName": "Priya Nair", "skills": ["Go", "SQL"]}` +
		"\n```\nLet me know if you need anything else."

	parsed := decodeResumeResponse(raw)
	if parsed.FullName != "Priya Nair" {
		t.Fatalf("fullName = %q", parsed.FullName)
	}
	if len(parsed.Skills) != 2 || parsed.Skills[0] != "Go" {
		t.Fatalf("skills = %v", parsed.Skills)
	}
}

func TestDecodeResumeResponseToleratesUnusableOutput(t *testing.T) {
	for _, raw := range []string{
		"Sorry, I could not make sense of that resume.",
		"```json\nnot actually json\n```",
		"} mismatched {",
		"",
	} {
		parsed := decodeResumeResponse(raw)
		if parsed == nil {
			t.Fatalf("decode(%q) returned nil", raw)
		}
		if parsed.FullName != "" || len(parsed.Skills) != 0 || len(parsed.Experiences) != 0 {
			t.Fatalf("decode(%q) = %+v, want an empty result", raw, parsed)
		}
	}
}
