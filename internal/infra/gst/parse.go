package gst

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"marketplace/internal/domain/model"
)

const addressNotAvailable = "Address not available"

type object map[string]interface{}

func (o object) obj(key string) (object, bool) {
	v, ok := o[key].(map[string]interface{})
	return object(v), ok
}

// 値があれば文字列として返す（数値などもそのまま文字列化）
func (o object) str(key string) string {
	switch v := o[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (o object) truthy(key string) bool {
	switch v := o[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}

// 最初に値があるもの
func (o object) first(keys ...string) string {
	for _, k := range keys {
		if s := o.str(k); s != "" {
			return s
		}
	}
	return ""
}

// 既知のいくつかの形からビジネス情報の部分を探す
func pickProfile(data object) (object, bool) {
	if result, ok := data.obj("result"); ok {
		if out, ok := result.obj("source_output"); ok {
			return out, true
		}
		if out, ok := result.obj("extraction_output"); ok {
			return out, true
		}
	}
	if inner, ok := data.obj("data"); ok && data.truthy("success") && inner.truthy("legal_name") {
		return inner, true
	}
	if data.truthy("legal_name") || data.truthy("trade_name") || data.truthy("legalName") || data.truthy("business_name") {
		return data, true
	}
	if inner, ok := data.obj("data"); ok && (inner.truthy("legal_name") || inner.truthy("business_name")) {
		return inner, true
	}
	if result, ok := data.obj("result"); ok && data.str("status") == "completed" {
		return result, true
	}
	if data.truthy("gstin") {
		// gstinが文字列だけのこともある
		if inner, ok := data.obj("gstin"); ok {
			return inner, true
		}
		return object{}, true
	}
	return nil, false
}

// Parse はAPIレスポンスを正規化する。見つからなければ ok=false
func Parse(body []byte, gstNumber string) (model.GSTDetails, bool, error) {
	var data object
	if err := json.Unmarshal(body, &data); err != nil {
		return model.GSTDetails{}, false, fmt.Errorf("decode gst response: %w", err)
	}

	profile, ok := pickProfile(data)
	if !ok {
		return model.GSTDetails{}, false, nil
	}

	var addr object
	if fields, ok := profile.obj("principal_place_of_business_fields"); ok {
		addr, _ = fields.obj("principal_place_of_business_address")
	}

	address := addressNotAvailable
	if addr != nil {
		var parts []string
		for _, k := range []string{"door_number", "street", "location", "dst", "state_name", "pincode"} {
			if s := addr.str(k); s != "" {
				parts = append(parts, s)
			}
		}
		address = strings.Join(parts, ", ")
	} else if s := profile.str("address"); s != "" {
		address = s
	}

	status := profile.first("gstin_status", "status", "sts", "taxpayer_status")
	if status == "" {
		status = "Active"
	}

	d := model.GSTDetails{
		IsValid:           true,
		GSTNumber:         gstNumber,
		BusinessName:      profile.first("trade_name", "tradeName", "legal_name", "legalName"),
		OwnerName:         profile.first("legal_name", "legalName", "trade_name", "tradeName"),
		Constitution:      profile.first("constitution_of_business", "constitution", "constitutionOfBusiness", "entity_type"),
		Address:           address,
		Status:            status,
		RegistrationDate:  profile.first("date_of_registration", "registrationDate", "rgdt", "registration_date"),
		StateJurisdiction: profile.first("state_jurisdiction", "state", "stateJurisdiction", "stj", "state_code"),
		Raw:               json.RawMessage(body),
	}
	if addr != nil {
		d.StreetAddress = addr.str("door_number")
		d.City = addr.first("street", "location", "dst")
		d.State = addr.str("state_name")
		d.Pincode = addr.str("pincode")
	}
	return d, true, nil
}

// 失敗時のメッセージ（あれば）
func upstreamMessage(body []byte) string {
	var data object
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	return data.str("message")
}
