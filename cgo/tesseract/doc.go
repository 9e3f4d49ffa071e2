// Package tesseract provides CGO bindings for Tesseract via gosseract.
// It backs the local OCR provider.
//
// Build requires:
//   - Tesseract and Leptonica libraries/headers
//     (libtesseract-dev libleptonica-dev, or brew install tesseract)
//   - A C++ compiler
//
// Builds without CGO get a stub whose Recognise fails with
// domain.ErrNotImplemented.
package tesseract
