package checkout

import (
	"regexp"
	"strings"
)

// 表单字段键（与错误映射共用）
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldAddress   = "address"
	FieldCity      = "city"
	FieldState     = "state"
	FieldZipCode   = "zipCode"
)

// emailPattern 基本的 local@domain.tld 形态校验
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Form 收货与联系信息表单
type Form struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

// trimmed 返回去除首尾空白的副本
func (f Form) trimmed() Form {
	return Form{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		Address:   strings.TrimSpace(f.Address),
		City:      strings.TrimSpace(f.City),
		State:     strings.TrimSpace(f.State),
		ZipCode:   strings.TrimSpace(f.ZipCode),
	}
}

// Validate 校验表单：所有字段必填，邮箱需匹配基本形态。
// 返回字段级错误映射，空映射表示通过。
func Validate(form Form) map[string]string {
	form = form.trimmed()
	fieldErrors := map[string]string{}

	if form.FirstName == "" {
		fieldErrors[FieldFirstName] = "First name is required"
	}
	if form.LastName == "" {
		fieldErrors[FieldLastName] = "Last name is required"
	}
	if form.Email == "" {
		fieldErrors[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(form.Email) {
		fieldErrors[FieldEmail] = "Email is invalid"
	}
	if form.Phone == "" {
		fieldErrors[FieldPhone] = "Phone is required"
	}
	if form.Address == "" {
		fieldErrors[FieldAddress] = "Address is required"
	}
	if form.City == "" {
		fieldErrors[FieldCity] = "City is required"
	}
	if form.State == "" {
		fieldErrors[FieldState] = "State is required"
	}
	if form.ZipCode == "" {
		fieldErrors[FieldZipCode] = "Zip code is required"
	}
	return fieldErrors
}
