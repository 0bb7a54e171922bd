package heatmap

// LevelIndex はカウントをパレットのレベル（0..levels-1）に量子化します。
// 0またはmaxCountが0以下のときはレベル0（活動なし）を返します。
// それ以外は ceil(count/maxCount * (levels-1)) を [1, levels-1] に丸めます。
// 切り上げを使うのは、1件でも活動のある日が活動なしの日と見分けられるように
// するためです。
func LevelIndex(count, maxCount, levels int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	// 正の整数同士なので切り上げ除算で ceil(ratio * (levels-1)) を計算できる
	idx := (count*(levels-1) + maxCount - 1) / maxCount
	if idx < 1 {
		idx = 1
	}
	if idx > levels-1 {
		idx = levels - 1
	}
	return idx
}
