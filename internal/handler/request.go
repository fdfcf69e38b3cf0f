package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mindsync/wellness/internal/service"
	"github.com/mindsync/wellness/internal/validation"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 10 << 20
	avatarField      = "profilePic"
)

var errBadBody = &validation.Error{Message: "Invalid request body"}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return errBadBody
	}
	return nil
}

// profileRequest is a parsed profile edit with an optional avatar.
type profileRequest struct {
	update service.ProfileUpdate
	upload *service.Upload
	close  func()
}

// parseProfileRequest accepts JSON, urlencoded or multipart bodies. Multipart
// bodies may carry one image in the profilePic field. Callers must call close.
func parseProfileRequest(w http.ResponseWriter, r *http.Request) (*profileRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		return parseMultipartProfile(w, r)
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		err := r.ParseForm()
		if err != nil {
			return nil, errBadBody
		}
		update, err := profileUpdateFromForm(r.PostForm)
		if err != nil {
			return nil, err
		}
		return &profileRequest{update: update, close: func() {}}, nil
	default:
		update, err := decodeProfileJSON(w, r)
		if err != nil {
			return nil, err
		}
		return &profileRequest{update: update, close: func() {}}, nil
	}
}

func parseMultipartProfile(w http.ResponseWriter, r *http.Request) (*profileRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBody)

	err := r.ParseMultipartForm(1 << 20)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, fmt.Errorf("%w: request body too large", validation.ErrUploadRejected)
		}
		return nil, errBadBody
	}
	form := r.MultipartForm

	req := &profileRequest{close: func() { _ = form.RemoveAll() }}

	req.update, err = profileUpdateFromForm(form.Value)
	if err != nil {
		req.close()
		return nil, err
	}

	files := form.File[avatarField]
	if len(files) > 1 {
		req.close()
		return nil, fmt.Errorf("%w: only one file may be uploaded", validation.ErrUploadRejected)
	}
	if len(files) == 0 {
		return req, nil
	}

	header := files[0]
	mimeType, err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		req.close()
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		req.close()
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	removeAll := req.close
	req.close = func() {
		_ = file.Close()
		removeAll()
	}

	req.upload = &service.Upload{
		Reader:       file,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
	}
	return req, nil
}

// profilePayload mirrors service.ProfileUpdate but takes age as a number or a
// numeric string, since form-built clients send both.
type profilePayload struct {
	Name     *string         `json:"name"`
	Bio      *string         `json:"bio"`
	Location *string         `json:"location"`
	Phone    *string         `json:"phone"`
	Age      json.RawMessage `json:"age"`
	Gender   *string         `json:"gender"`
	Goal     *string         `json:"goal"`
}

func decodeProfileJSON(w http.ResponseWriter, r *http.Request) (service.ProfileUpdate, error) {
	var p profilePayload
	err := decodeBody(w, r, &p)
	if err != nil {
		return service.ProfileUpdate{}, err
	}

	age, err := parseAgeJSON(p.Age)
	if err != nil {
		return service.ProfileUpdate{}, err
	}

	return service.ProfileUpdate{
		Name:     p.Name,
		Bio:      p.Bio,
		Location: p.Location,
		Phone:    p.Phone,
		Age:      age,
		Gender:   p.Gender,
		Goal:     p.Goal,
	}, nil
}

func parseAgeJSON(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return parseAge(s)
	}

	var n int
	err := json.Unmarshal(raw, &n)
	if err != nil {
		return nil, &validation.Error{Field: "age", Message: "age must be a whole number"}
	}
	return &n, nil
}

func parseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &validation.Error{Field: "age", Message: "age must be a whole number"}
	}
	return &n, nil
}

func profileUpdateFromForm(values url.Values) (service.ProfileUpdate, error) {
	field := func(key string) *string {
		if _, ok := values[key]; !ok {
			return nil
		}
		v := values.Get(key)
		return &v
	}

	var update service.ProfileUpdate
	update.Name = field("name")
	update.Bio = field("bio")
	update.Location = field("location")
	update.Phone = field("phone")
	update.Gender = field("gender")
	update.Goal = field("goal")

	if age := field("age"); age != nil {
		n, err := parseAge(*age)
		if err != nil {
			return service.ProfileUpdate{}, err
		}
		update.Age = n
	}

	return update, nil
}
