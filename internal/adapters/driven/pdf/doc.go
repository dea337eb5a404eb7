// Package pdf implements the PDF renderer port.
//
// pdfcpu validates the file and reports page sizes, MuPDF (go-fitz)
// rasterises page surfaces and unipdf's extractor supplies the positioned
// text layer used for selection.
package pdf
