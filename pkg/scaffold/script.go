// SPDX-License-Identifier: MPL-2.0

package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/funkindev/vslice/pkg/platform"
)

// ScriptExt is the extension of generated scripted classes.
const ScriptExt = ".hxc"

// Script kinds, from most to least commonly used.
const (
	KindModule            ScriptKind = "Module"
	KindEmpty             ScriptKind = "Empty"
	KindSong              ScriptKind = "Song"
	KindStage             ScriptKind = "Stage"
	KindLevel             ScriptKind = "Level"
	KindSongEvent         ScriptKind = "SongEvent"
	KindNoteKind          ScriptKind = "NoteKind"
	KindConversation      ScriptKind = "Conversation"
	KindDialogueBox       ScriptKind = "DialogueBox"
	KindFunkinSprite      ScriptKind = "FunkinSprite"
	KindCharacter         ScriptKind = "Character"
	KindPlayableCharacter ScriptKind = "PlayableCharacter"
	KindBackingCard       ScriptKind = "BackingCard"
	KindFreeplayDJ        ScriptKind = "FreeplayDJ"
	KindMusicBeatState    ScriptKind = "MusicBeatState"
	KindMusicBeatSubState ScriptKind = "MusicBeatSubState"
	KindFlxRuntimeShader  ScriptKind = "FlxRuntimeShader"
)

var (
	// ErrUnknownScriptKind is the sentinel error wrapped by InvalidScriptKindError.
	ErrUnknownScriptKind = errors.New("unknown script kind")
	// ErrInvalidClassName is returned for names that are not valid Haxe class names.
	ErrInvalidClassName = errors.New("invalid class name")
	// ErrFileExists is returned when a generated file would overwrite an existing one.
	ErrFileExists = errors.New("file already exists")

	classNameRegex = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)

	allKinds = []ScriptKind{
		KindModule, KindEmpty, KindSong, KindStage, KindLevel, KindSongEvent, KindNoteKind,
		KindConversation, KindDialogueBox,
		KindFunkinSprite, KindCharacter, KindPlayableCharacter,
		KindBackingCard, KindFreeplayDJ,
		KindMusicBeatState, KindMusicBeatSubState,
		KindFlxRuntimeShader,
	}
)

type (
	// ScriptKind selects the base class of a new scripted class.
	ScriptKind string

	// InvalidScriptKindError is returned when a ScriptKind value is not recognized.
	InvalidScriptKindError struct {
		Value ScriptKind
	}

	scriptData struct {
		ClassName string
		ID        string
	}
)

// Kinds returns every script kind in menu order.
func Kinds() []ScriptKind {
	return append([]ScriptKind(nil), allKinds...)
}

// ParseScriptKind resolves s to a ScriptKind, ignoring case.
func ParseScriptKind(s string) (ScriptKind, error) {
	for _, k := range allKinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", &InvalidScriptKindError{Value: ScriptKind(s)}
}

// String returns the string representation of the ScriptKind.
func (k ScriptKind) String() string { return string(k) }

// Validate returns an error if k is not a known kind.
func (k ScriptKind) Validate() error {
	for _, known := range allKinds {
		if k == known {
			return nil
		}
	}
	return &InvalidScriptKindError{Value: k}
}

// Error implements the error interface.
func (e *InvalidScriptKindError) Error() string {
	names := make([]string, len(allKinds))
	for i, k := range allKinds {
		names[i] = string(k)
	}
	return fmt.Sprintf("unknown script kind %q (valid: %s)", e.Value, strings.Join(names, ", "))
}

// Unwrap returns ErrUnknownScriptKind for errors.Is() compatibility.
func (e *InvalidScriptKindError) Unwrap() error { return ErrUnknownScriptKind }

// ValidateClassName checks that name is a Haxe type name usable as a file name.
func ValidateClassName(name string) error {
	if !classNameRegex.MatchString(name) {
		return fmt.Errorf("%w %q: must start with an uppercase letter and contain only letters, digits and underscores", ErrInvalidClassName, name)
	}
	if err := platform.ValidateFileName(name + ScriptExt); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClassName, err)
	}
	return nil
}

// RenderScript returns the source of a new scripted class.
func RenderScript(kind ScriptKind, className string) ([]byte, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateClassName(className); err != nil {
		return nil, err
	}
	return render("scripts/"+string(kind)+ScriptExt+".tmpl", scriptData{
		ClassName: className,
		ID:        ScriptID(className),
	})
}

// NewScript writes <className>.hxc into dir and returns its path. An
// existing file is never overwritten.
func NewScript(dir string, kind ScriptKind, className string) (string, error) {
	src, err := RenderScript(kind, className)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, className+ScriptExt)
	if err := writeNew(path, src); err != nil {
		return "", err
	}
	return path, nil
}

// ScriptID derives the registry id of a scripted class from its name:
// "MyCoolSong" becomes "my-cool-song".
func ScriptID(className string) string {
	var sb strings.Builder
	runes := []rune(className)
	for i, r := range runes {
		if r == '_' {
			sb.WriteByte('-')
			continue
		}
		lower := strings.ToLower(string(r))
		isUpper := lower != string(r)
		if isUpper && i > 0 && runes[i-1] != '_' {
			prevLower := strings.ToLower(string(runes[i-1])) == string(runes[i-1])
			nextLower := i+1 < len(runes) && strings.ToLower(string(runes[i+1])) == string(runes[i+1]) && runes[i+1] != '_'
			if prevLower || nextLower {
				sb.WriteByte('-')
			}
		}
		sb.WriteString(lower)
	}
	return sb.String()
}

// writeNew creates path with data, failing with ErrFileExists when the file
// is already present.
func writeNew(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	_, err = f.Write(data)
	return err
}
