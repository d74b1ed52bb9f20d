// Package base62 реализует обратимое кодирование неотрицательных чисел
// в компактные строки над алфавитом [0-9a-zA-Z].
package base62

import (
	"errors"
	"fmt"
	"strings"
)

// Alphabet задаёт цифры позиционной системы счисления с основанием 62:
// 0-9 , затем a-z, затем A-Z.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const base = int64(len(Alphabet))

// MinCodeLength - минимальная длина кода для ненулевых значений.
// Значения счётчика (>= 100 000 000 000) кодируются ровно в 7 символов,
// поэтому лексикографический порядок кодов совпадает с числовым.
const MinCodeLength = 7

// ErrInvalidEncoding возвращается при декодировании строки
// с символами вне алфавита.
var ErrInvalidEncoding = errors.New("invalid base62 encoding")

// Encode преобразует неотрицательное число в base62-строку.
// Ноль кодируется одним символом "0", ненулевые значения дополняются
// слева нулями до MinCodeLength символов.
func Encode(n int64) string {
	if n == 0 {
		return string(Alphabet[0])
	}

	var buf [11]byte // 62^11 > max int64
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%base]
		n /= base
	}

	encoded := string(buf[i:])
	if len(encoded) < MinCodeLength {
		encoded = strings.Repeat("0", MinCodeLength-len(encoded)) + encoded
	}

	return encoded
}

// Decode преобразует base62-строку обратно в число.
// Ведущие нули не влияют на результат: Decode(Encode(n)) == n.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty string: %w", ErrInvalidEncoding)
	}

	var n int64
	for _, c := range s {
		idx := strings.IndexRune(Alphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("character %q: %w", c, ErrInvalidEncoding)
		}
		n = n*base + int64(idx)
	}

	return n, nil
}
