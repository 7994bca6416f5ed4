package handler

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"

    "github.com/iliyamo/fyyur-trivia/internal/showtime"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
    v *validator.Validate
}

// NewValidator returns a Validator with the custom "showtime" tag, which
// accepts strings in showtime.Layout.
func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    err := v.RegisterValidation("showtime", func(fl validator.FieldLevel) bool {
        _, err := time.Parse(showtime.Layout, fl.Field().String())
        return err == nil
    })
    if err != nil {
        panic(fmt.Sprintf("register showtime validation: %v", err))
    }
    return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
    return cv.v.Struct(i)
}

// FlexInt is an integer that also accepts a quoted number, in JSON bodies as
// well as form values.  An empty string or null leaves it at zero, which
// "required" then rejects.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        *f = 0
        return nil
    }
    if len(b) > 0 && b[0] == '"' {
        var s string
        if err := json.Unmarshal(b, &s); err != nil {
            return err
        }
        return f.UnmarshalParam(s)
    }
    var n int64
    if err := json.Unmarshal(b, &n); err != nil {
        return fmt.Errorf("not an integer: %s", b)
    }
    *f = FlexInt(n)
    return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (f *FlexInt) UnmarshalParam(s string) error {
    s = strings.TrimSpace(s)
    if s == "" {
        *f = 0
        return nil
    }
    n, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
        return fmt.Errorf("not an integer: %q", s)
    }
    *f = FlexInt(n)
    return nil
}

// OptionalString records whether a JSON key was present at all.  A null
// value still counts as present and leaves Value empty.
type OptionalString struct {
    Present bool
    Value   string
}

// UnmarshalJSON implements json.Unmarshaler.  It only runs when the key is
// in the object, null included.
func (o *OptionalString) UnmarshalJSON(b []byte) error {
    o.Present = true
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        o.Value = ""
        return nil
    }
    return json.Unmarshal(b, &o.Value)
}
