// Package seed holds the built-in event dataset. These records are static:
// custom events layer on top of them through the store.
package seed

import "github.com/timeaxis/timeaxis/internal/models"

// Events is the built-in chronology, both tracks, unsorted. IDs are stable
// so enrichment cache entries survive a rebuild of the merged list.
var Events = []models.HistoricalEvent{
	// China track
	{ID: "seed-oracle-bones", Year: -1250, Track: models.TrackChina, Title: "Oracle Bone Script Flourishes", TitleZH: "甲骨文盛行", Tags: []string{"writing", "shang dynasty"}},
	{ID: "seed-zhou-founding", Year: -1046, Track: models.TrackChina, Title: "Founding of the Zhou Dynasty", TitleZH: "周朝建立", Tags: []string{"dynasty"}},
	{ID: "seed-confucius", Year: -551, Track: models.TrackChina, Title: "Birth of Confucius", TitleZH: "孔子诞生", Tags: []string{"philosophy"}},
	{ID: "seed-qin-unification", Year: -221, Track: models.TrackChina, Title: "Qin Unifies China", TitleZH: "秦统一中国", Tags: []string{"dynasty", "empire"}},
	{ID: "seed-han-founding", Year: -202, Track: models.TrackChina, Title: "Founding of the Han Dynasty", TitleZH: "汉朝建立", Tags: []string{"dynasty"}},
	{ID: "seed-silk-road", Year: -130, Track: models.TrackChina, Title: "Silk Road Opens", TitleZH: "丝绸之路开通", Tags: []string{"trade", "exploration"}},
	{ID: "seed-paper", Year: 105, Track: models.TrackChina, Title: "Cai Lun Improves Papermaking", TitleZH: "蔡伦改进造纸术", Tags: []string{"invention"}},
	{ID: "seed-three-kingdoms", Year: 220, Track: models.TrackChina, Title: "Three Kingdoms Period Begins", TitleZH: "三国时期开始", Tags: []string{"dynasty", "war"}},
	{ID: "seed-tang-founding", Year: 618, Track: models.TrackChina, Title: "Founding of the Tang Dynasty", TitleZH: "唐朝建立", Tags: []string{"dynasty", "golden age"}},
	{ID: "seed-gunpowder", Year: 850, Track: models.TrackChina, Title: "Invention of Gunpowder", TitleZH: "火药发明", Tags: []string{"invention"}},
	{ID: "seed-song-founding", Year: 960, Track: models.TrackChina, Title: "Founding of the Song Dynasty", TitleZH: "宋朝建立", Tags: []string{"dynasty"}},
	{ID: "seed-movable-type", Year: 1045, Track: models.TrackChina, Title: "Bi Sheng Invents Movable Type", TitleZH: "毕昇发明活字印刷", Tags: []string{"invention", "printing"}},
	{ID: "seed-yuan-founding", Year: 1271, Track: models.TrackChina, Title: "Kublai Khan Founds the Yuan", TitleZH: "忽必烈建立元朝", Tags: []string{"dynasty", "mongols"}},
	{ID: "seed-zheng-he", Year: 1405, Track: models.TrackChina, Title: "Zheng He's Treasure Voyages Begin", TitleZH: "郑和下西洋", Tags: []string{"exploration", "navy"}},
	{ID: "seed-forbidden-city", Year: 1420, Track: models.TrackChina, Title: "Completion of the Forbidden City", TitleZH: "紫禁城建成", Tags: []string{"architecture", "ming dynasty"}},
	{ID: "seed-qing-founding", Year: 1644, Track: models.TrackChina, Title: "Qing Dynasty Takes Beijing", TitleZH: "清军入关", Tags: []string{"dynasty"}},
	{ID: "seed-opium-war", Year: 1840, Track: models.TrackChina, Title: "First Opium War", TitleZH: "第一次鸦片战争", Tags: []string{"war", "trade"}},
	{ID: "seed-xinhai", Year: 1911, Track: models.TrackChina, Title: "Xinhai Revolution", TitleZH: "辛亥革命", Tags: []string{"revolution"}},
	{ID: "seed-prc-founding", Year: 1949, Track: models.TrackChina, Title: "Founding of the People's Republic", TitleZH: "中华人民共和国成立", Tags: []string{"modern china"}},
	{ID: "seed-reform-opening", Year: 1978, Track: models.TrackChina, Title: "Reform and Opening-Up", TitleZH: "改革开放", Tags: []string{"economy", "modern china"}},

	// World track
	{ID: "seed-giza", Year: -2560, Track: models.TrackWorld, Title: "Great Pyramid of Giza Completed", TitleZH: "吉萨大金字塔建成", Tags: []string{"egypt", "architecture"}},
	{ID: "seed-hammurabi", Year: -1754, Track: models.TrackWorld, Title: "Code of Hammurabi", TitleZH: "汉谟拉比法典", Tags: []string{"law", "mesopotamia"}},
	{ID: "seed-athens-democracy", Year: -508, Track: models.TrackWorld, Title: "Athenian Democracy Established", TitleZH: "雅典民主制确立", Tags: []string{"greece", "politics"}},
	{ID: "seed-alexander", Year: -334, Track: models.TrackWorld, Title: "Alexander Invades Persia", TitleZH: "亚历山大远征波斯", Tags: []string{"war", "empire"}},
	{ID: "seed-caesar", Year: -49, Track: models.TrackWorld, Title: "Caesar Crosses the Rubicon", TitleZH: "凯撒渡过卢比孔河", Tags: []string{"rome", "civil war"}},
	{ID: "seed-rome-fall", Year: 476, Track: models.TrackWorld, Title: "Fall of the Western Roman Empire", TitleZH: "西罗马帝国灭亡", Tags: []string{"rome", "empire"}},
	{ID: "seed-hijra", Year: 622, Track: models.TrackWorld, Title: "The Hijra", TitleZH: "希吉拉", Tags: []string{"islam", "religion"}},
	{ID: "seed-charlemagne", Year: 800, Track: models.TrackWorld, Title: "Coronation of Charlemagne", TitleZH: "查理曼加冕", Tags: []string{"empire", "europe"}},
	{ID: "seed-hastings", Year: 1066, Track: models.TrackWorld, Title: "Battle of Hastings", TitleZH: "黑斯廷斯战役", Tags: []string{"war", "england"}},
	{ID: "seed-magna-carta", Year: 1215, Track: models.TrackWorld, Title: "Magna Carta Sealed", TitleZH: "大宪章签署", Tags: []string{"law", "england"}},
	{ID: "seed-black-death", Year: 1347, Track: models.TrackWorld, Title: "Black Death Reaches Europe", TitleZH: "黑死病传入欧洲", Tags: []string{"plague"}},
	{ID: "seed-gutenberg", Year: 1440, Track: models.TrackWorld, Title: "Gutenberg's Printing Press", TitleZH: "古腾堡印刷机", Tags: []string{"invention", "printing"}},
	{ID: "seed-columbus", Year: 1492, Track: models.TrackWorld, Title: "Columbus Reaches the Americas", TitleZH: "哥伦布到达美洲", Tags: []string{"exploration"}},
	{ID: "seed-newton", Year: 1687, Track: models.TrackWorld, Title: "Newton Publishes the Principia", TitleZH: "牛顿发表《原理》", Tags: []string{"science"}},
	{ID: "seed-french-revolution", Year: 1789, Track: models.TrackWorld, Title: "French Revolution Begins", TitleZH: "法国大革命爆发", Tags: []string{"revolution", "france"}},
	{ID: "seed-origin-species", Year: 1859, Track: models.TrackWorld, Title: "On the Origin of Species", TitleZH: "《物种起源》出版", Tags: []string{"science", "biology"}},
	{ID: "seed-ww1", Year: 1914, Track: models.TrackWorld, Title: "First World War Begins", TitleZH: "第一次世界大战爆发", Tags: []string{"war"}},
	{ID: "seed-ww2-end", Year: 1945, Track: models.TrackWorld, Title: "End of the Second World War", TitleZH: "第二次世界大战结束", Tags: []string{"war"}},
	{ID: "seed-apollo-11", Year: 1969, Track: models.TrackWorld, Title: "Apollo 11 Moon Landing", TitleZH: "阿波罗11号登月", Tags: []string{"space", "technology"}},
	{ID: "seed-www", Year: 1989, Track: models.TrackWorld, Title: "Invention of the World Wide Web", TitleZH: "万维网发明", Tags: []string{"technology", "internet"}},
}
