package store

import "github.com/ningrum77/puskesmas-bok/pkg/models"

// DefaultSnapshot is the seed state for a fresh or unreadable data file:
// one travel-report template, the standing activity catalog, the base SHS
// price list and the clinic letterhead.
func DefaultSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Transactions: []models.Transaction{},
		Schedules:    []models.ScheduleEvent{},
		Reports:      []models.ActivityReport{},
		Holidays:     []models.Holiday{},
		RPKGoals:     []models.RPKGoal{},
		Templates: []models.Template{
			{
				ID:   "tpl-1",
				Name: "Template Laporan Perjalanan Dinas (Memo)",
				Body: defaultMemoBody,
			},
		},
		Staff: []models.Staff{
			{ID: "s1", Name: "Dr. Ahmad Subagyo", Code: "1"},
			{ID: "s2", Name: "Siti Aminah, Amd.Keb", Code: "2"},
			{ID: "s3", Name: "Budi Santoso, SKM", Code: "3"},
		},
		ActivityTypes: []models.ActivityType{
			{ID: "act-1", Code: "P", Name: "Pusling", Color: "#0d9488", RequiredStaffCount: 3},
			{ID: "act-2", Code: "PY", Name: "Posyandu", Color: "#0ea5e9", RequiredStaffCount: 2},
			{ID: "act-3", Code: "F", Name: "Fogging", Color: "#f59e0b", RequiredStaffCount: 4},
			{ID: "act-4", Code: "I", Name: "Imunisasi", Color: "#8b5cf6", RequiredStaffCount: 2},
			{ID: "act-5", Code: "D", Name: "Dinas Luar", Color: "#ec4899", RequiredStaffCount: 1},
		},
		SHSItems: []models.SHSItem{
			{ID: "shs-1", Name: "Transport Petugas (Lokal)", Category: "Transport", Unit: "Org/Kali", Price: 50000},
			{ID: "shs-2", Name: "Transport Petugas (Kecamatan)", Category: "Transport", Unit: "Org/Kali", Price: 75000},
			{ID: "shs-3", Name: "Snack Peserta/Sasaran", Category: "Makan Minum", Unit: "Kotak", Price: 15000},
			{ID: "shs-4", Name: "Makan Siang Petugas", Category: "Makan Minum", Unit: "Porsi", Price: 35000},
		},
		Letterhead: models.LetterheadConfig{
			GovName:       "PEMERINTAH KABUPATEN TEGAL",
			DeptName:      "DINAS KESEHATAN",
			PuskesmasName: "PUSKESMAS KUPU",
			Address:       "Jl. Raya Kupu No. 123, Kec. Dukuhturi, Kabupaten Tegal",
			Phone:         "(0283) 123456",
			Email:         "pkmkupu@tegal.go.id",
			Website:       "www.pkmkupu.tegalkab.go.id",
		},
	}
}

const defaultMemoBody = `{{kop_memo}}

<p style="text-align: center; font-weight: bold; font-size: 14px; margin-bottom: 20px;">LAPORAN HASIL KEGIATAN</p>

<p>I. Dasar Pelaksanaan</p>
<p>Surat Perintah Tugas Nomor: {{nomor_spt}} Tanggal {{tanggal_spt}}</p>

<p>II. Hasil Kegiatan</p>
<p>Kegiatan dilaksanakan pada tanggal {{tanggal_kegiatan}} bertempat di {{lokasi_kegiatan}} dengan rincian data sebagai berikut:</p>

<table style="width: 100%; border-collapse: collapse; border: 1px solid black; margin: 10px 0;">
  <tr style="background-color: #f2f2f2;">
    <th style="border: 1px solid black; padding: 8px; text-align: center; width: 40px;">No</th>
    <th style="border: 1px solid black; padding: 8px; text-align: left;">Uraian Temuan / Hasil</th>
    <th style="border: 1px solid black; padding: 8px; text-align: left;">Keterangan / Sasaran</th>
  </tr>
  <tr>
    <td style="border: 1px solid black; padding: 8px; text-align: center;">1</td>
    <td style="border: 1px solid black; padding: 8px;">{{hasil_uraian_1}}</td>
    <td style="border: 1px solid black; padding: 8px;">{{keterangan_1}}</td>
  </tr>
  <tr>
    <td style="border: 1px solid black; padding: 8px; text-align: center;">2</td>
    <td style="border: 1px solid black; padding: 8px;">{{hasil_uraian_2}}</td>
    <td style="border: 1px solid black; padding: 8px;">{{keterangan_2}}</td>
  </tr>
  <tr>
    <td style="border: 1px solid black; padding: 8px; text-align: center;">3</td>
    <td style="border: 1px solid black; padding: 8px;">{{hasil_uraian_3}}</td>
    <td style="border: 1px solid black; padding: 8px;">{{keterangan_3}}</td>
  </tr>
</table>

<p>III. Kesimpulan dan Saran</p>
<p>{{kesimpulan_dan_saran}}</p>

<p>IV. Penutup</p>
<p>Demikian laporan ini dibuat untuk dipergunakan sebagaimana mestinya.</p>

{{tanda_tangan}}`
