package service

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dbarkol/telco-ai-solution-labs/types"
	"github.com/dbarkol/telco-ai-solution-labs/utils"
)

// A whole manual yielding fewer bytes than this means the primary extraction
// path failed (scanned or oddly encoded PDF); we then retry in layout mode.
const minDocumentChars = 1000

// DocumentService extracts per-page text from a PDF using the poppler tools,
// with tesseract OCR as a per-page fallback for image-only pages.
type DocumentService struct {
	minChars int
}

func NewDocumentService() *DocumentService {
	return &DocumentService{minChars: minDocumentChars}
}

// ExtractPages returns the text of every page in page order. Pages that yield
// no text stay in the result with empty text; the chunker skips them. When the
// whole document comes back implausibly small the extraction is rerun with
// layout-aware mode and the better result wins.
func (s *DocumentService) ExtractPages(path string) ([]types.PageText, error) {
	totalPages, err := countPages(path)
	if err != nil {
		return nil, err
	}

	pages := s.extractAll(path, totalPages, false)
	if totalChars(pages) < s.minChars {
		log.Printf("Extraction yielded only %d chars, retrying in layout mode", totalChars(pages))
		layoutPages := s.extractAll(path, totalPages, true)
		if totalChars(layoutPages) > totalChars(pages) {
			pages = layoutPages
		}
	}
	return pages, nil
}

func (s *DocumentService) extractAll(path string, totalPages int, layout bool) []types.PageText {
	pages := make([]types.PageText, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := s.extractPage(path, pageNum, layout)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			text = ""
		}
		pages = append(pages, types.PageText{Number: pageNum, Text: cleanText(text)})
	}
	return pages
}

// extractPage tries pdftotext first and falls back to OCR when the page has no
// text layer at all.
func (s *DocumentService) extractPage(path string, pageNum int, layout bool) (string, error) {
	text, err := extractWithPdftotext(path, pageNum, layout)
	if err == nil {
		return text, nil
	}
	text, ocrErr := extractWithTesseract(path, pageNum)
	if ocrErr != nil {
		return "", fmt.Errorf("failed to extract text: %w", ocrErr)
	}
	return text, nil
}

func extractWithPdftotext(path string, pageNum int, layout bool) (string, error) {
	args := []string{
		"-f", strconv.Itoa(pageNum),
		"-l", strconv.Itoa(pageNum),
		"-enc", "UTF-8", "-nopgbrk",
	}
	if layout {
		args = append(args, "-layout")
	}
	args = append(args, path, "-")

	cmd := exec.Command("pdftotext", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed on page %d: %w", pageNum, err)
	}
	if trimmed := strings.TrimSpace(out.String()); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNum)
}

// extractWithTesseract renders the page to an image with pdftoppm and OCRs it.
func extractWithTesseract(path string, pageNum int) (string, error) {
	tempDir, err := os.MkdirTemp("", "ocr-"+utils.GetFileNameWithoutExt(path))
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	convertCmd := exec.Command("pdftoppm",
		"-f", strconv.Itoa(pageNum),
		"-l", strconv.Itoa(pageNum),
		"-png", path, filepath.Join(tempDir, "page"))
	if err := convertCmd.Run(); err != nil {
		return "", fmt.Errorf("failed to render page %d: %w", pageNum, err)
	}

	images, err := filepath.Glob(filepath.Join(tempDir, "page-*.png"))
	if err != nil || len(images) == 0 {
		return "", fmt.Errorf("no rendered image for page %d", pageNum)
	}

	ocrCmd := exec.Command("tesseract", images[0], "stdout",
		"-l", "eng",
		"--oem", "3",
		"--psm", "3",
	)
	var out bytes.Buffer
	ocrCmd.Stdout = &out
	if err := ocrCmd.Run(); err != nil {
		return "", fmt.Errorf("failed to run tesseract: %w", err)
	}
	if trimmed := strings.TrimSpace(out.String()); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNum)
}

// countPages reads the page count from pdfinfo output.
func countPages(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	re := regexp.MustCompile(`Pages:\s+(\d+)`)
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := re.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func totalChars(pages []types.PageText) int {
	total := 0
	for _, p := range pages {
		total += len(p.Text)
	}
	return total
}

// cleanText strips control characters and extraction artifacts.
func cleanText(text string) string {
	replacements := map[string]string{
		"\u0000": "",   // null
		"\ufffd": "",   // unicode replacement character
		"\u001b": "",   // escape
		"\r":     "",   // carriage return
		"\f":     "\n", // form feed
		"  ":     " ",  // collapse double spaces
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
