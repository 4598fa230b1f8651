package crypto

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost стоимость bcrypt для хранимых паролей
const PasswordCost = bcrypt.DefaultCost

// ErrPasswordMismatch возвращается, если пароль не совпадает с хешем
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword хеширует пароль с помощью bcrypt (соль генерируется внутри)
func HashPassword(password string) (string, error) {
	return hashPasswordWithCost(password, PasswordCost)
}

func hashPasswordWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword сравнивает пароль с bcrypt хешем за постоянное время.
// Возвращает ErrPasswordMismatch при несовпадении.
func VerifyPassword(password, hash string) error {
	if hash == "" {
		return fmt.Errorf("hashed password cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}

// dummyHash хеш с той же стоимостью, что и у настоящих паролей
var dummyHash = sync.OnceValue(func() string {
	hash, err := hashPasswordWithCost("promptpal-dummy-password", PasswordCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// VerifyDummy выполняет ту же работу bcrypt, что и VerifyPassword, и всегда
// возвращает ErrPasswordMismatch. Используется, когда пользователь не найден,
// чтобы время ответа не выдавало существование аккаунта.
func VerifyDummy(password string) error {
	if err := VerifyPassword(password, dummyHash()); err != nil {
		return err
	}
	return ErrPasswordMismatch
}
