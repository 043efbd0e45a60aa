package models

import "net/url"

// Member is one row of the member table.
// Column order is fixed: iid, nm, birth, blood, phone, email, idno, pwd.
// Password is stored and compared as plaintext.
type Member struct {
	IID   int64  `json:"iid" db:"iid"`
	Name  string `json:"nm" db:"nm"`
	Birth string `json:"birth" db:"birth"`
	Blood string `json:"blood" db:"blood"`
	Phone string `json:"phone" db:"phone"`
	Email string `json:"email" db:"email"`
	IDNo  string `json:"idno" db:"idno"`
	Pwd   string `json:"-" db:"pwd"`
}

// MemberFields are the seven mutable columns of a member.
type MemberFields struct {
	Name  string `db:"nm"`
	Birth string `db:"birth"`
	Blood string `db:"blood"`
	Phone string `db:"phone"`
	Email string `db:"email"`
	IDNo  string `db:"idno"`
	Pwd   string `db:"pwd"`
}

// Fields returns the mutable part of m.
func (m Member) Fields() MemberFields {
	return MemberFields{
		Name:  m.Name,
		Birth: m.Birth,
		Blood: m.Blood,
		Phone: m.Phone,
		Email: m.Email,
		IDNo:  m.IDNo,
		Pwd:   m.Pwd,
	}
}

// MemberFieldsFromForm reads the edit form. Values are taken as-is;
// missing keys become empty strings.
func MemberFieldsFromForm(form url.Values) MemberFields {
	return MemberFields{
		Name:  form.Get("nm"),
		Birth: form.Get("birth"),
		Blood: form.Get("blood"),
		Phone: form.Get("phone"),
		Email: form.Get("email"),
		IDNo:  form.Get("idno"),
		Pwd:   form.Get("pwd"),
	}
}

// LoginRequest carries the login form values.
type LoginRequest struct {
	IDNo string
	Pwd  string
}

// LoginRequestFromForm reads the login form.
func LoginRequestFromForm(form url.Values) LoginRequest {
	return LoginRequest{
		IDNo: form.Get("idno"),
		Pwd:  form.Get("pwd"),
	}
}
