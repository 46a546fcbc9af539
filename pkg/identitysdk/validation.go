package identitysdk

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Field limits shared by the server and clients.
const (
	MaxEmailLen    = 100
	MinPasswordLen = 6
	MaxPasswordLen = 100
	MaxNameLen     = 50
)

func emailRules(v *string) *validation.FieldRules {
	return validation.Field(v, validation.Required, validation.Length(1, MaxEmailLen), is.Email)
}

func passwordRules(v *string) *validation.FieldRules {
	return validation.Field(v, validation.Required, validation.Length(MinPasswordLen, MaxPasswordLen))
}

func nameRules(v *string) *validation.FieldRules {
	return validation.Field(v, validation.Required, validation.Length(1, MaxNameLen))
}

func (r RegisterRequest) Validate() map[string]string {
	return details(validation.ValidateStruct(&r,
		emailRules(&r.Email),
		passwordRules(&r.Password),
		nameRules(&r.FirstName),
		nameRules(&r.LastName),
	))
}

func (r LoginRequest) Validate() map[string]string {
	return details(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	))
}

func (r ForgotPasswordRequest) Validate() map[string]string {
	return details(validation.ValidateStruct(&r, emailRules(&r.Email)))
}

func (r ResetPasswordRequest) Validate() map[string]string {
	return details(validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		passwordRules(&r.NewPassword),
	))
}

func (r UpdateProfileRequest) Validate() map[string]string {
	return details(validation.ValidateStruct(&r,
		emailRules(&r.Email),
		nameRules(&r.FirstName),
		nameRules(&r.LastName),
	))
}

func (r ChangeRoleRequest) Validate() map[string]string {
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	return details(validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.In("USER", "ADMIN")),
	))
}

// details flattens ozzo errors into field → reason, nil when valid.
func details(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}
	return out
}
