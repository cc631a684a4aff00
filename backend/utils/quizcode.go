package utils

import "math/rand"

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// QuizCodeLength is the length of a quiz access code.
const QuizCodeLength = 10

// GenerateQuizCode returns a random access code. Uniqueness is enforced by
// the database constraint; callers retry on collision.
func GenerateQuizCode() string {
	code := make([]byte, QuizCodeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}
