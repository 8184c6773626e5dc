package utils

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a process-unique record identifier: a base-36 monotonic
// time component followed by a random nanoid component. Two repositories can
// call this back to back without colliding.
func GenerateID() (string, error) {
	suffix, err := gonanoid.Generate(characters, 8)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + suffix, nil
}
