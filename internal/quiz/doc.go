// Package quiz turns raw quiz exports into canonical score sheets.
//
// Headers are mapped onto numbered slots ("Quiz N (/10)"), raw cells become
// Score values (absent or an integer in [0, 100]), an optional curve cap is
// applied, and columns that land on the same slot are merged with the
// best-score-wins retake rule.
package quiz
