// Package ai is the optional text-assist client. Every call is best effort:
// on any failure the caller keeps the operator's prior text.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

var ErrNoAPIKey = errors.New("ai: no API key configured")

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Client calls the Gemini REST endpoint. BaseURL is overridable for tests.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) generate(prompt string) (string, error) {
	if c.APIKey == "" {
		return "", ErrNoAPIKey
	}
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Post(base+"?key="+c.APIKey, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("ai: empty response")
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// EnhanceSection rewrites one report section into formal Indonesian health
// report prose, or drafts it from scratch when the current text is empty.
func (c *Client) EnhanceSection(section, currentText, context string) (string, error) {
	prompt := fmt.Sprintf(`Context: %s.
Tugas: Kembangkan atau buat teks profesional untuk bagian "%s" dari sebuah laporan kegiatan puskesmas.
Teks saat ini: "%s"

Aturan:
1. Berikan teks yang formal, informatif, dan sesuai standar laporan kesehatan Indonesia.
2. Jika teks saat ini kosong, buatkan draf awal yang relevan dengan konteks kegiatan.
3. Jangan gunakan markdown yang berlebihan, fokus pada narasi paragraf.`, context, section, currentText)
	return c.generate(prompt)
}

// SummarizeExpenses produces an executive summary of a report's spending.
func (c *Client) SummarizeExpenses(expenses []models.Expense) (string, error) {
	raw, err := json.Marshal(expenses)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(`Tugas: Berikan ringkasan eksekutif mengenai penggunaan anggaran berdasarkan daftar pengeluaran berikut. Jelaskan alokasi dana utama dan apakah penggunaan dana terlihat efisien atau ada catatan khusus.
Daftar Pengeluaran: %s`, raw)
	return c.generate(prompt)
}
