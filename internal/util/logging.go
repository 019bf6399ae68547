package util

import (
	"fmt"
	"log"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// WrapError заворачивает ошибку в категорию из apperror, сохраняя обе в цепочке %w
func WrapError(message string, category error, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w: %w", message, category, err)
}
