package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// GST番号の照会結果（外部APIのレスポンスを正規化したもの）
type GSTDetails struct {
	IsValid           bool            `json:"isValid"`
	GSTNumber         string          `json:"gstNumber"`
	BusinessName      string          `json:"businessName"`
	OwnerName         string          `json:"ownerName"`
	Constitution      string          `json:"constitution"`
	Address           string          `json:"address"`
	Status            string          `json:"status"`
	RegistrationDate  string          `json:"registrationDate"`
	StateJurisdiction string          `json:"stateJurisdiction"`
	StreetAddress     string          `json:"streetAddress"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	Pincode           string          `json:"pincode"`
	Raw               json.RawMessage `json:"raw,omitempty"`
}

const GSTNumberLength = 15

var gstCleaner = strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "", "-", "")

// 空白とハイフンを除いて大文字にする
func CleanGSTNumber(s string) string {
	return strings.ToUpper(gstCleaner.Replace(s))
}

// 外部APIが番号を認識しなかった
var ErrGSTNotVerified = errors.New("gst number not verified")

// 照会に失敗したときのエラー（APIのメッセージを持つ）
type GSTVerifyError struct {
	Message string
}

func (e *GSTVerifyError) Error() string { return e.Message }

func (e *GSTVerifyError) Unwrap() error { return ErrGSTNotVerified }
