package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor applied to every stored password hash.
const bcryptCost = 14

func HashPassword(p string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(p), bcryptCost)
	return string(bytes), err
}

func CheckPassword(hash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	return err == nil
}
