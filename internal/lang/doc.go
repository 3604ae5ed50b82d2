// Package lang classifies chat input as English or Persian. Detection is
// script based, with an optional statistical refiner (whatlanggo or
// lingua-go) consulted only for mixed-script text.
package lang
