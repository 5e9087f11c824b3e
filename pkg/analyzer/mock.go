package analyzer

// MockChatResponse is shown in chat when the gateway cannot be reached.
const MockChatResponse = "I'm having trouble reaching the AI service right now, so this is a placeholder reply. " +
	"Check your API key and network connection, then send your message again."

// MockAnalysisResponse is substituted for an analysis when the gateway
// cannot be reached. It has the same shape as a real answer.
const MockAnalysisResponse = "# Two Sum (offline example)\n" +
	"- Use a hash map from value to index while scanning the array once\n" +
	"- Important: check for the complement before inserting the current value\n" +
	"- Return the pair of indices as soon as the complement is found\n" +
	"\n" +
	"```python\n" +
	"def two_sum(nums, target):\n" +
	"    seen = {}  # value -> index\n" +
	"    for i, n in enumerate(nums):\n" +
	"        if target - n in seen:  # complement already visited\n" +
	"            return [seen[target - n], i]\n" +
	"        seen[n] = i\n" +
	"    return []\n" +
	"```\n" +
	"\n" +
	"```cpp\n" +
	"vector<int> twoSum(vector<int>& nums, int target) {\n" +
	"    unordered_map<int, int> seen;  // value -> index\n" +
	"    for (int i = 0; i < (int)nums.size(); ++i) {\n" +
	"        auto it = seen.find(target - nums[i]);\n" +
	"        if (it != seen.end()) return {it->second, i};\n" +
	"        seen[nums[i]] = i;\n" +
	"    }\n" +
	"    return {};\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"Time Complexity: O(n) since every element is visited once.\n" +
	"Space Complexity: O(n) for the hash map.\n" +
	"\n" +
	"This is a simulated answer because the AI service could not be reached.\n" +
	"\n" +
	"* A brute force double loop is O(n^2); the hash map trades memory for speed\n" +
	"* Checking before inserting avoids pairing an element with itself\n" +
	"* Duplicates work because the earlier index is stored first\n" +
	"* The single pass makes this the optimal approach for unsorted input\n" +
	"* If the input were sorted, two pointers would give O(1) extra space\n" +
	"* Mention edge cases such as no valid pair or negative numbers\n"
