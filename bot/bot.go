// Package bot holds the single-player word picker. It is a stateless
// heuristic over a dictionary snapshot: the authoritative room never calls
// it, the client does, between its own turns.
package bot

import (
	"math/rand/v2"
	"sort"
	"strings"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// FindWord picks a word starting with the required letter that has not been
// used yet, or "" when the bot is stuck (which costs it the turn). Easy picks
// at random; medium prefers words that keep the game open; hard picks words
// whose last letter leaves the opponent the fewest follow-ups.
func FindWord(dictionary []string, used map[string]bool, requiredLetter string, difficulty Difficulty) string {
	requiredLetter = strings.ToLower(requiredLetter)

	available := make([]string, 0, len(dictionary))
	for _, w := range dictionary {
		w = strings.ToLower(w)
		if strings.HasPrefix(w, requiredLetter) && !used[w] {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		return ""
	}

	switch difficulty {
	case Medium:
		return pickStrategic(dictionary, used, available)
	case Hard:
		return pickDifficult(dictionary, used, available)
	default:
		return pickRandom(available)
	}
}

func pickRandom(words []string) string {
	return words[rand.IntN(len(words))]
}

// followUpCount is how many unused words could legally follow the given word.
func followUpCount(dictionary []string, used map[string]bool, word string) int {
	runes := []rune(word)
	lastLetter := strings.ToLower(string(runes[len(runes)-1]))

	count := 0
	for _, w := range dictionary {
		w = strings.ToLower(w)
		if strings.HasPrefix(w, lastLetter) && !used[w] {
			count++
		}
	}
	return count
}

type scoredWord struct {
	word  string
	score int
}

func scoreWords(dictionary []string, used map[string]bool, words []string) []scoredWord {
	scored := make([]scoredWord, 0, len(words))
	for _, w := range words {
		scored = append(scored, scoredWord{word: w, score: followUpCount(dictionary, used, w)})
	}
	return scored
}

// pickStrategic picks from the middle of the follow-up-count range: not a
// dead end, not a gift.
func pickStrategic(dictionary []string, used map[string]bool, words []string) string {
	scored := scoreWords(dictionary, used, words)
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	mid := len(scored) / 2
	span := len(scored) / 4
	if span == 0 {
		span = 1
	}
	start := max(0, mid-span)
	end := min(len(scored), mid+span)

	candidates := make([]string, 0, end-start)
	for _, sw := range scored[start:end] {
		candidates = append(candidates, sw.word)
	}
	return pickRandom(candidates)
}

// pickDifficult picks among the three words leaving the fewest follow-ups.
func pickDifficult(dictionary []string, used map[string]bool, words []string) string {
	scored := scoreWords(dictionary, used, words)
	sort.Slice(scored, func(i, j int) bool { return scored[i].score < scored[j].score })

	top := min(3, len(scored))
	candidates := make([]string, 0, top)
	for _, sw := range scored[:top] {
		candidates = append(candidates, sw.word)
	}
	return pickRandom(candidates)
}
