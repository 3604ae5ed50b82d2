// Package translation wraps the translation model. Adapter loads the model
// lazily and reports failures as *Failure; Cache memoizes translations by
// (text, source, target) so repeated turns do not hit the model again.
package translation
