package utils

import "golang.org/x/crypto/bcrypt"

// PasswordCost 比 bcrypt.DefaultCost 低，登录接口保持响应
const PasswordCost = 8

func HashPassword(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	return string(b)
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
