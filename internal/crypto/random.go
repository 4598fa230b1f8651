package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SecretSize размер случайного секрета подписи токенов в байтах
const SecretSize = 32

// GenerateRandomBytes возвращает size криптографически случайных байт
func GenerateRandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size: %d", size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// GenerateSecret генерирует секрет из SecretSize байт в hex кодировке
func GenerateSecret() (string, error) {
	buf, err := GenerateRandomBytes(SecretSize)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
