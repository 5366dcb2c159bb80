package chord

import "github.com/jsphweid/fretnot/model"

// heuristicLabels reads seventh and sixth chords straight off interval
// pairs. Exact-match lookups miss these when the sounding set is only part
// of a larger catalogued chord.
func heuristicLabels(pcs []model.PitchClass) []string {
	if len(pcs) < 2 {
		return nil
	}

	var res []string
	for _, root := range pcs {
		above := semitoneSet(root, pcs)
		minor3, major3 := above[3], above[4]
		flat6, major6 := above[8], above[9]
		minor7, major7 := above[10], above[11]
		noSeventh := !minor7 && !major7

		r := string(root)
		if major3 && major7 {
			res = append(res, r+"maj7")
		}
		if minor3 && minor7 {
			res = append(res, r+"m7")
		}
		if major3 && minor7 {
			res = append(res, r+"7")
		}
		if major3 && major6 && noSeventh {
			res = append(res, r+"maj6")
		}
		if minor3 && major6 && noSeventh {
			res = append(res, r+"m6")
		}
		if minor3 && flat6 && noSeventh {
			res = append(res, r+"mb6")
		}
	}
	return res
}
