package security

import "golang.org/x/crypto/bcrypt"

// HashPassword возвращает bcrypt-хэш пароля. Соль встроена в хэш,
// поэтому для одного пароля результат каждый раз разный
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль с хэшем. Расшифровки нет, только пересчёт
func CheckPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
