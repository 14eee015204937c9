// Package printing provides the infrastructure behind a label submission:
// drawing the label PDF, writing it into the output folder, and handing the
// file to the operating system's printing facility.
//
// This package contains:
// - PDFRenderer interface and FPDFRenderer, which draws the fixed label layout
// - Code128Bars, which turns barcode content into bar runs for drawing
// - LabelStorage interface and FileSystemStorage, which never overwrites a file
// - Dispatcher interface with the line-printer (lp) and Windows shell "print" verb
//   implementations
//
// Example usage:
//
//	renderer := NewFPDFRenderer(&FPDFConfig{Layout: label.DefaultLayout()})
//	result, err := renderer.Render(ctx, &RenderRequest{Label: req})
//	if err != nil {
//	    return err
//	}
//	stored, err := storage.Store(ctx, &StoreRequest{PartNumber: req.PartNumber, PDFData: result.PDFData})
//	if err != nil {
//	    return err
//	}
//	_, err = dispatcher.Print(ctx, stored.Path)
package printing
