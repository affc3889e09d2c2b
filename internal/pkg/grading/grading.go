// Package grading converts raw scores into percentages and letter grades.
package grading

import "math"

type threshold struct {
	min    float64
	letter string
}

// scale is ordered from the highest threshold down; the first match wins.
var scale = []threshold{
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// Failing is returned for any percentage below the lowest threshold.
const Failing = "F"

// Percentage returns score/maxScore*100 rounded to two decimals. A non-positive
// maxScore yields 0.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return Round2(score / maxScore * 100)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LetterGrade maps a percentage onto the letter scale.
func LetterGrade(percentage float64) string {
	for _, t := range scale {
		if percentage >= t.min {
			return t.letter
		}
	}
	return Failing
}

// Compute is Percentage followed by LetterGrade.
func Compute(score, maxScore float64) (float64, string) {
	p := Percentage(score, maxScore)
	return p, LetterGrade(p)
}
