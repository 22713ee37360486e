package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// 允许通过 PATCH 修改的字段（静态白名单，不靠反射枚举模型字段）
var (
	TaskUpdatableFields = []string{"description", "completed"}
	UserUpdatableFields = []string{"name", "email", "password", "age"}
)

type TaskPatch struct {
	Description *string `json:"description" validate:"omitempty,min=2,max=1024"`
	Completed   *bool   `json:"completed"`
}

func (p TaskPatch) Apply(t *Task) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

type UserPatch struct {
	Name     *string `json:"name"     validate:"omitempty,min=3,max=64"`
	Email    *string `json:"email"    validate:"omitempty,email,max=191"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72,nopassword"`
	Age      *int    `json:"age"      validate:"omitempty,gt=0"`
}

// ParseTaskPatch 校验字段白名单后解码；任何白名单外字段都在触达存储前被拒绝
func ParseTaskPatch(body []byte) (TaskPatch, error) {
	var p TaskPatch
	if err := decodeAllowed(body, TaskUpdatableFields, &p); err != nil {
		return TaskPatch{}, err
	}
	trimPtr(p.Description)
	if err := validateStruct(p); err != nil {
		return TaskPatch{}, err
	}
	return p, nil
}

func ParseUserPatch(body []byte) (UserPatch, error) {
	var p UserPatch
	if err := decodeAllowed(body, UserUpdatableFields, &p); err != nil {
		return UserPatch{}, err
	}
	trimPtr(p.Name)
	trimPtr(p.Password)
	if p.Email != nil {
		e := NormalizeEmail(*p.Email)
		p.Email = &e
	}
	if err := validateStruct(p); err != nil {
		return UserPatch{}, err
	}
	return p, nil
}

// DisallowedFields 返回不在白名单内的字段（有序）
func DisallowedFields(keys []string, allowed []string) []string {
	var bad []string
	for _, k := range keys {
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			bad = append(bad, k)
		}
	}
	sort.Strings(bad)
	return bad
}

func decodeAllowed(body []byte, allowed []string, dst any) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &ValidationError{Msg: "body must be a JSON object", Err: err}
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	if bad := DisallowedFields(keys, allowed); len(bad) > 0 {
		return &ValidationError{
			Field: strings.Join(bad, ","),
			Msg:   "not allowed to be updated (allowed: " + strings.Join(allowed, ", ") + ")",
		}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ValidationError{Msg: "invalid field type", Err: err}
	}
	return nil
}
