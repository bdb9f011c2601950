package ui

import (
	"regexp"
	"strings"
)

const (
	OTPLength      = 4
	ResendCooldown = 60
)

// OTPEntry is the four-box code input. Focus is the slot that has the
// caret.
type OTPEntry struct {
	Digits [OTPLength]string
	Focus  int
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Input stores the first digit typed into slot and advances focus.
// Input without digits clears the slot.
func (e OTPEntry) Input(slot int, text string) OTPEntry {
	if slot < 0 || slot >= OTPLength {
		return e
	}
	e.Focus = slot
	var kept []rune
	for _, r := range text {
		if isDigit(r) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		e.Digits[slot] = ""
		return e
	}
	e.Digits[slot] = string(kept[0])
	if slot < OTPLength-1 {
		e.Focus = slot + 1
	}
	return e
}

// Backspace on an empty slot moves focus to the previous slot.
func (e OTPEntry) Backspace(slot int) OTPEntry {
	if slot < 0 || slot >= OTPLength {
		return e
	}
	e.Focus = slot
	if e.Digits[slot] == "" && slot > 0 {
		e.Focus = slot - 1
	}
	return e
}

func (e OTPEntry) Left(slot int) OTPEntry {
	if slot > 0 && slot < OTPLength {
		e.Focus = slot - 1
	}
	return e
}

func (e OTPEntry) Right(slot int) OTPEntry {
	if slot >= 0 && slot < OTPLength-1 {
		e.Focus = slot + 1
	}
	return e
}

// Paste strips non-digits from text and fills every slot, but only when
// exactly a full code remains. Anything else is ignored.
func (e OTPEntry) Paste(text string) OTPEntry {
	var digits []string
	for _, r := range text {
		if isDigit(r) {
			digits = append(digits, string(r))
		}
	}
	if len(digits) != OTPLength {
		return e
	}
	copy(e.Digits[:], digits)
	e.Focus = OTPLength - 1
	return e
}

func (e OTPEntry) Value() string {
	return strings.Join(e.Digits[:], "")
}

func (e OTPEntry) Complete() bool {
	return len(e.Value()) == OTPLength
}

// ResendTimer counts down the seconds until a new code may be requested.
type ResendTimer struct {
	Remaining int
}

func NewResendTimer() ResendTimer {
	return ResendTimer{Remaining: ResendCooldown}
}

func (t ResendTimer) Tick() ResendTimer {
	if t.Remaining > 0 {
		t.Remaining--
	}
	return t
}

// Reset restarts the countdown after a code is resent.
func (t ResendTimer) Reset() ResendTimer {
	return NewResendTimer()
}

func (t ResendTimer) CanResend() bool {
	return t.Remaining == 0
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail gates the email step's submit button.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
