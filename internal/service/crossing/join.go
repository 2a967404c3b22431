package crossing

import "parkcross/internal/model"

// JoinStats 左连接统计
type JoinStats struct {
	Matched   int `json:"matched"`   // 至少匹配一行的左表行数
	Unmatched int `json:"unmatched"` // 未匹配的左表行数
	Expanded  int `json:"expanded"`  // 多重匹配额外产生的行数
}

// LeftJoin 左外连接：左表行全部保留
// 无匹配 → 附加列为空；匹配 n 行 → 左表行按右表顺序重复 n 次
// 附加列与左表已有列同名时，左表列改为 <col>_x，附加列保持原名
func LeftJoin(left, right *model.Table, key string, attach []string) (*model.Table, JoinStats) {
	var stats JoinStats

	index := make(map[string][]model.Row, right.Len())
	for _, r := range right.Rows {
		k := r.Get(key).String()
		index[k] = append(index[k], r)
	}

	leftName := make(map[string]string, len(left.Columns))
	for _, c := range left.Columns {
		leftName[c] = c
	}
	for _, c := range attach {
		if c != key && left.HasColumn(c) {
			leftName[c] = c + "_x"
		}
	}

	out := model.NewTable()
	for _, c := range left.Columns {
		out.AddColumn(leftName[c])
	}
	for _, c := range attach {
		out.AddColumn(c)
	}

	for _, l := range left.Rows {
		base := make(model.Row, len(out.Columns))
		for c, v := range l {
			if name, ok := leftName[c]; ok {
				base[name] = v
			} else {
				base[c] = v
			}
		}

		matches := index[l.Get(key).String()]
		if len(matches) == 0 {
			stats.Unmatched++
			row := base.Clone()
			for _, c := range attach {
				row[c] = model.Null
			}
			out.Rows = append(out.Rows, row)
			continue
		}

		stats.Matched++
		stats.Expanded += len(matches) - 1
		for _, m := range matches {
			row := base.Clone()
			for _, c := range attach {
				row[c] = m.Get(c)
			}
			out.Rows = append(out.Rows, row)
		}
	}

	return out, stats
}
