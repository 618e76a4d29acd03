// Package anki exports vocabulary as an Anki package (.apkg) with one note
// per word, a Swedish-to-English and an English-to-Swedish card per note,
// the word's speech as media, and its examples on the answer side.
package anki
