// Package resume2pdf compiles resume documents to PDF through LaTeX.
//
// # Quick Start
//
//	conv, err := resume2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	doc, err := resume.Parse(payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.Convert(ctx, doc)
//	if err != nil {
//	    log.Fatal(resume2pdf.Reason(err))
//	}
//	os.WriteFile(result.Filename, result.PDF, 0644)
//
// # Conversion Pipeline
//
//  1. Each rich-text fragment (section heading, item title and organization,
//     bullet body) compiles to LaTeX; disabled entities are skipped.
//  2. The fragments are assembled into the template at its placeholder.
//  3. The job waits for an admission slot.
//  4. A fresh workspace receives resume.tex.
//  5. pdflatex runs in its own process group under a deadline.
//  6. The PDF is read back and the workspace is removed in the background.
//
// Steps 1 and 2 fail fast with ErrMalformedDocument, ErrTemplateMissing or
// ErrPlaceholderMissing before any process starts.
//
// # Configuration
//
//	conv, err := resume2pdf.NewConverter(
//	    resume2pdf.WithTimeout(30 * time.Second),
//	    resume2pdf.WithConcurrency(4),
//	    resume2pdf.WithWorkspaceRoot("/var/tmp/resume2pdf"),
//	    resume2pdf.WithAssetPath("/etc/resume2pdf"),
//	)
//
// # Stale Workspaces
//
// A crash mid-job can leave a workspace behind. Sweep removes workspaces
// older than a threshold once; StartReaper does so periodically:
//
//	conv.StartReaper(ctx, 5*time.Minute, 30*time.Minute)
package resume2pdf
