package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// GenerateNanoID возвращает новый nanoid для идентификаторов
// уведомлений и настроек напоминаний.
func GenerateNanoID() (string, error) {
	return gonanoid.New()
}
