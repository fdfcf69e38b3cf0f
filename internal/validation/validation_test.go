package validation

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@x.com", true},
		{"first.last@sub.example.org", true},
		{"", false},
		{"no-at-sign", false},
		{"a@localhost", false},
		{"A <a@x.com>", false},
		{strings.Repeat("a", 250) + "@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.ok && err != nil {
				t.Fatalf("ValidateEmail(%q) = %v, want nil", tt.email, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("ValidateEmail(%q) = nil, want error", tt.email)
				}
				if !errors.As(err, new(*Error)) {
					t.Fatalf("expected *Error, got %v", err)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1"); err != nil {
		t.Fatalf("expected secret1 to pass, got %v", err)
	}
	if err := ValidatePassword("abc"); err == nil {
		t.Fatal("expected short password to fail")
	}
	if err := ValidatePassword(strings.Repeat("x", 73)); err == nil {
		t.Fatal("expected 73 byte password to fail")
	}
	for _, pw := range []string{"mypassword9", "x123456x", "qwerty12"} {
		if err := ValidatePassword(pw); err != nil {
			t.Fatalf("expected %q to pass, got %v", pw, err)
		}
	}
}

func TestProfileFieldRules(t *testing.T) {
	tests := []struct {
		name string
		err  error
		ok   bool
	}{
		{"age zero", ValidateAge(0), true},
		{"age max", ValidateAge(120), true},
		{"age negative", ValidateAge(-1), false},
		{"age too old", ValidateAge(121), false},
		{"gender male", ValidateGender("Male"), true},
		{"gender unspecified", ValidateGender(""), true},
		{"gender lowercase", ValidateGender("male"), false},
		{"phone ok", ValidatePhone("0123456789"), true},
		{"phone short", ValidatePhone("12345"), false},
		{"phone letters", ValidatePhone("01234abcde"), false},
		{"location cap", ValidateLocation(strings.Repeat("l", 100)), true},
		{"location over", ValidateLocation(strings.Repeat("l", 101)), false},
		{"goal over", ValidateGoal(strings.Repeat("g", 101)), false},
		{"bio cap", ValidateBio(strings.Repeat("b", 300)), true},
		{"bio over", ValidateBio(strings.Repeat("b", 301)), false},
		{"name blank", ValidateName("   "), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ok && tt.err != nil {
				t.Fatalf("unexpected error: %v", tt.err)
			}
			if !tt.ok && tt.err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 1<<20)...)
	bmp := append([]byte("BM"), bytes.Repeat([]byte{0}, 1<<20)...)
	ico := append([]byte("\x00\x00\x01\x00"), bytes.Repeat([]byte{0}, 1024)...)

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantMIME string
		rejected bool
	}{
		{"png accepted", "avatar.png", png, "image/png", false},
		{"bmp accepted", "me.bmp", bmp, "image/bmp", false},
		{"ico accepted", "me.ICO", ico, "image/x-icon", false},
		{"bmp bytes with png extension", "me.png", bmp, "", true},
		{"text rejected", "notes.txt", []byte("just some text"), "", true},
		{"png bytes with txt extension", "avatar.txt", png, "", true},
		{"too large", "big.png", append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 6<<20)...), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := multipartHeader(t, tt.filename, tt.content)

			mime, err := ValidateFile(header, ImageConstraints)
			if tt.rejected {
				if !errors.Is(err, ErrUploadRejected) {
					t.Fatalf("expected ErrUploadRejected, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateFile returned error: %v", err)
			}
			if mime != tt.wantMIME {
				t.Fatalf("expected mime %q, got %q", tt.wantMIME, mime)
			}
		})
	}
}

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("profilePic", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	_, header, err := req.FormFile("profilePic")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return header
}
