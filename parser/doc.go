/*
Package parser turns lottery result documents into typed aggregates.

# Format Detection

DetectFormat classifies a text sample by counting marker phrases:

	format := parser.DetectFormat(sample)

Score-ranking markers win ties because score-ranking documents also contain
the generic 申请编码 header that would otherwise look like a waiting list.

# Line Parsing

Lines pass a header/footer pre-filter, then must match one of two whole-line
patterns:

	序号 申请编码 轮候时间                                    (waiting list)
	序号 申请编码 姓名 证件号码 家庭代际数 家庭总积分 注册时间  (score ranking)

Pattern misses are skipped silently; conversion failures are logged and
skipped. No bad line aborts its document.

# Document Parsing

Parse orchestrates a whole document; ParseFile additionally handles PDF text
extraction:

	agg, err := parser.ParseFile(path, sourceURL, downloadTime)
	report := parser.Validate(agg)

Validate returns an advisory report (is_valid, errors, warnings); admission
is the caller's decision.
*/
package parser
