package scrape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const listingHTML = `<html><body>
<table class="ranking-list"><tbody>
<tr>
  <td class="code">MEC.A201</td>
  <td class="course_title"><a href="/index.php?module=General&amp;action=T0300&amp;JWC=202402190&amp;lang=JA">機械力学</a></td>
  <td class="lecturer"><a href="/index.php?module=General&amp;action=T0100&amp;id=1">山田 太郎</a><br><a href="/index.php?module=General&amp;action=T0100&amp;id=2">佐藤 花子</a></td>
  <td class="opening_department"><a href="/index.php?module=General&amp;action=T0200&amp;id=MEC">機械系</a></td>
  <td class="start">1Q</td>
  <td class="sylbs">2024-03-21</td>
</tr>
<tr>
  <td class="code"></td>
  <td class="course_title">特別講義</td>
  <td class="lecturer"></td>
  <td class="opening_department"></td>
  <td class="start">通年</td>
  <td class="sylbs"></td>
</tr>
</tbody></table>
</body></html>`

// detailFields are the values of the thirteen definition lists of a detail
// page, in page order.
func detailFields() []string {
	return []string{
		"機械系",
		`<a href="/index.php?module=General&amp;action=T0100&amp;id=1">山田 太郎</a>`,
		"講義\n  (対面型)",
		"-",
		"月1-2(W521)&nbsp;&nbsp;木3-4(W521)",
		"-",
		"MEC.A201",
		"2",
		"2024年度",
		"1Q",
		"-",
		"-",
		"日本語",
	}
}

const overviewHTML = `<div id="overview">
<div><h3>講義の概要とねらい</h3><p>剛体の運動を学ぶ。</p></div>
<div><h3>到達目標</h3><p>運動方程式を立てられる。</p></div>
<div><h3>キーワード</h3><p>振動、 剛体，運動方程式、</p></div>
<div><h3>学生が身につける力</h3><table><tr>
  <td class="skill_checked2">専門力</td><td>教養力</td><td class="skill_checked2">展開力(探究力又は設定力)</td>
</tr></table></div>
<div><h3>授業の進め方</h3><p>講義形式で行う。</p></div>
<div><h3>授業計画・課題</h3><table><tbody>
  <tr><th>回</th><th>授業計画</th><th>課題</th></tr>
  <tr><td class="number_of_times">第1回</td><td class="plan">ガイダンス</td><td class="assignment">復習</td></tr>
  <tr><td class="number_of_times">第2回</td><td class="plan">自由振動</td><td class="assignment">演習問題</td></tr>
  <tr><td class="number_of_times">まとめ</td><td class="plan">総括</td><td class="assignment"></td></tr>
</tbody></table></div>
<div><h3>授業時間外学修</h3><p>予習を行うこと。</p></div>
<div><h3>教科書</h3><p>指定なし</p></div>
<div><h3>参考書</h3><p>機械力学入門</p></div>
<div><h3>成績評価</h3><p>期末試験</p></div>
<div><h3>関連する科目</h3><ul>
  <li>MEC.A202 : 機械力学第二</li>
  <li>MEC.B211 ： 材料力学</li>
</ul></div>
<div><h3>履修の条件</h3><p>なし</p></div>
<div><h3>連絡先</h3><p>yamada@example.ac.jp</p><p>03-0000-0000</p></div>
<div><h3>オフィスアワー</h3><p>事前にメールで予約</p></div>
<div><h3>その他</h3><p>特になし</p></div>
<h3>実務経験のある教員等による授業科目等</h3>
<p>該当する</p>
</div>`

func detailHTML(fields []string, overview string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="page-title-area">`)
	b.WriteString(`<h3>講義科目名称：機械力学&nbsp;&nbsp;&nbsp;Mechanical Dynamics</h3></div>`)
	b.WriteString(`<div class="gaiyo-data">`)
	for i, field := range fields {
		fmt.Fprintf(&b, "<dl><dt>field %d</dt><dd>%s</dd></dl>", i, field)
	}
	b.WriteString(`</div>`)
	b.WriteString(overview)
	b.WriteString(`</body></html>`)
	return b.String()
}
